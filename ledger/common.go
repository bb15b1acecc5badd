package ledger

import (
	"errors"
)

var ErrEmptyKey = errors.New("empty key supplied")
var ErrEmptyTableNameSupplied = errors.New("empty tableName supplied")
var ErrNilDatabaseConnection = errors.New("database connection is nil")
var ErrNilStub = errors.New("chaincode stub is nil")

// ErrStoreUnavailable is joined onto every failure that originates in the underlying store.
// Handlers surface it as an operation failure; it is never retried here.
var ErrStoreUnavailable = errors.New("ledger store unavailable")

var ErrBuildingQueryFailed = errors.New("building query failed")
var ErrScanningRowFailed = errors.New("scanning database row failed")
var ErrEncodingSelectorFailed = errors.New("encoding selector failed")
var ErrDecodingEntryFailed = errors.New("decoding sequence entry failed")
var ErrSequenceFailed = errors.New("iterating result sequence failed")
var ErrSequenceClosed = errors.New("result sequence already closed")

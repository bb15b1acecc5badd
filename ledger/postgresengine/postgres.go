package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
	"github.com/AntonStoeckl/commodity-ledger-go/ledger/postgresengine/internal/adapters"
)

const (
	defaultTableName = "ledger_entries"

	logMsgBuildQueryFailed  = "failed to build query"
	logMsgDBQueryFailed     = "database query execution failed"
	logMsgDBExecFailed      = "database execution failed"
	logMsgCloseRowsFailed   = "failed to close database rows"
	logMsgScanRowFailed     = "failed to scan database row"
	logMsgEntryRead         = "entry read"
	logMsgEntryWritten      = "entry written"
	logMsgSequenceOpened    = "result sequence opened"
	logMsgSchemaEnsured     = "schema ensured"
	logMsgSQLExecuted       = "executed sql for: "
	logMsgOperation         = "ledger operation: "
	logAttrError            = "error"
	logAttrQuery            = "query"
	logAttrKey              = "key"
	logAttrFound            = "found"
	logAttrDurationMS       = "duration_ms"
	logAttrTable            = "table"
	logAttrConsistencyLevel = "consistency_level"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Ledger is a ledger.Ledger persisting every version of every key in one PostgreSQL table.
type Ledger struct {
	db               adapters.DBAdapter
	tableName        string
	txIDs            func() uuid.UUID
	logger           ledger.Logger
	contextualLogger ledger.ContextualLogger
	metricsCollector ledger.MetricsCollector
	tracingCollector ledger.TracingCollector
}

// NewLedgerFromPGXPool creates a new Ledger using a pgx Pool with optional configuration.
func NewLedgerFromPGXPool(db *pgxpool.Pool, options ...Option) (*Ledger, error) {
	if db == nil {
		return nil, ledger.ErrNilDatabaseConnection
	}

	return newLedger(adapters.NewPGXAdapter(db), options...)
}

// NewLedgerFromPGXPoolWithReplica creates a new Ledger using a primary pgx Pool and a replica pool.
// Reads from contexts marked with ledger.WithEventualConsistency go to the replica.
func NewLedgerFromPGXPoolWithReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (*Ledger, error) {
	if db == nil {
		return nil, ledger.ErrNilDatabaseConnection
	}

	if replica == nil {
		return NewLedgerFromPGXPool(db, options...)
	}

	return newLedger(adapters.NewPGXAdapterWithReplica(db, replica), options...)
}

// NewLedgerFromSQLDB creates a new Ledger using a sql.DB with optional configuration.
func NewLedgerFromSQLDB(db *sql.DB, options ...Option) (*Ledger, error) {
	if db == nil {
		return nil, ledger.ErrNilDatabaseConnection
	}

	return newLedger(adapters.NewSQLAdapter(db), options...)
}

// NewLedgerFromSQLX creates a new Ledger using a sqlx.DB with optional configuration.
func NewLedgerFromSQLX(db *sqlx.DB, options ...Option) (*Ledger, error) {
	if db == nil {
		return nil, ledger.ErrNilDatabaseConnection
	}

	return newLedger(adapters.NewSQLXAdapter(db), options...)
}

func newLedger(db adapters.DBAdapter, options ...Option) (*Ledger, error) {
	l := &Ledger{
		db:        db,
		tableName: defaultTableName,
		txIDs:     uuid.New,
	}

	for _, option := range options {
		if err := option(l); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// Get returns the payload of the newest version of key, or nil if the key was never written or is deleted.
func (l *Ledger) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ledger.ErrEmptyKey
	}

	ctx, obs := l.observe(ctx, operationGet, key)

	sqlQuery, args, buildErr := l.buildGetQuery(key)
	if buildErr != nil {
		obs.fail(errorTypeBuildQuery, buildErr)
		return nil, errors.Join(ledger.ErrBuildingQueryFailed, buildErr)
	}

	rows, queryErr := l.executeQuery(ctx, sqlQuery, args, operationGet)
	if queryErr != nil {
		obs.fail(errorTypeDatabaseQuery, queryErr)
		return nil, queryErr
	}
	defer l.closeRows(ctx, rows)

	var payload []byte
	var isDelete bool

	found := rows.Next()
	if found {
		if scanErr := rows.Scan(&payload, &isDelete); scanErr != nil {
			l.logError(ctx, logMsgScanRowFailed, scanErr, logAttrKey, key)
			obs.fail(errorTypeRowScan, scanErr)

			return nil, errors.Join(ledger.ErrScanningRowFailed, scanErr)
		}
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		obs.fail(errorTypeDatabaseQuery, rowsErr)
		return nil, errors.Join(ledger.ErrStoreUnavailable, rowsErr)
	}

	if !found || isDelete {
		payload = nil
	}

	obs.succeed(spanAttrFound, boolString(payload != nil))
	l.logOperation(ctx, logMsgEntryRead, logAttrKey, key, logAttrFound, payload != nil)

	return payload, nil
}

// Put appends a new version of key. A payload that is a JSON object is also stored as a JSONB document.
func (l *Ledger) Put(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return ledger.ErrEmptyKey
	}

	return l.write(ctx, operationPut, key, value, false)
}

// Delete appends a tombstone version for key.
func (l *Ledger) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ledger.ErrEmptyKey
	}

	return l.write(ctx, operationDelete, key, nil, true)
}

func (l *Ledger) write(ctx context.Context, operation, key string, value []byte, isDelete bool) error {
	ctx, obs := l.observe(ctx, operation, key)

	sqlQuery, args, buildErr := l.buildInsertQuery(key, value, documentOf(value), isDelete, l.txIDs())
	if buildErr != nil {
		obs.fail(errorTypeBuildQuery, buildErr)
		return errors.Join(ledger.ErrBuildingQueryFailed, buildErr)
	}

	start := time.Now()
	_, execErr := l.db.Exec(ctx, sqlQuery, args...)
	l.logQueryWithDuration(ctx, sqlQuery, operation, time.Since(start))

	if execErr != nil {
		l.logError(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		obs.fail(errorTypeDatabaseExec, execErr)

		return errors.Join(ledger.ErrStoreUnavailable, execErr)
	}

	obs.succeed()
	l.logOperation(ctx, logMsgEntryWritten, logAttrKey, key)

	return nil
}

// HistoryOf returns every version of key in the order they were written, tombstones included.
func (l *Ledger) HistoryOf(ctx context.Context, key string) (ledger.Sequence, error) {
	if key == "" {
		return nil, ledger.ErrEmptyKey
	}

	ctx, obs := l.observe(ctx, operationHistory, key)

	sqlQuery, args, buildErr := l.buildHistoryQuery(key)
	if buildErr != nil {
		obs.fail(errorTypeBuildQuery, buildErr)
		return nil, errors.Join(ledger.ErrBuildingQueryFailed, buildErr)
	}

	rows, queryErr := l.executeQuery(ctx, sqlQuery, args, operationHistory)
	if queryErr != nil {
		obs.fail(errorTypeDatabaseQuery, queryErr)
		return nil, queryErr
	}

	obs.succeed()
	l.logOperation(ctx, logMsgSequenceOpened, logAttrKey, key)

	return newRowSequence(rows, func(rows adapters.DBRows) (ledger.Entry, error) {
		entry := ledger.Entry{Key: key}
		err := rows.Scan(&entry.TxID, &entry.Timestamp, &entry.Value, &entry.IsDelete)
		entry.Timestamp = entry.Timestamp.UTC()

		return entry, err
	}), nil
}

// Query returns the current live value of every key whose document contains the selector's conditions,
// ordered by key.
func (l *Ledger) Query(ctx context.Context, selector ledger.Selector) (ledger.Sequence, error) {
	ctx, obs := l.observe(ctx, operationQuery, "")

	sqlQuery, args, buildErr := l.buildSelectorQuery(selector)
	if buildErr != nil {
		obs.fail(errorTypeBuildQuery, buildErr)
		return nil, buildErr
	}

	rows, queryErr := l.executeQuery(ctx, sqlQuery, args, operationQuery)
	if queryErr != nil {
		obs.fail(errorTypeDatabaseQuery, queryErr)
		return nil, queryErr
	}

	obs.succeed()
	l.logOperation(ctx, logMsgSequenceOpened, logAttrConsistencyLevel, ledger.GetConsistencyLevel(ctx).String())

	return newRowSequence(rows, func(rows adapters.DBRows) (ledger.Entry, error) {
		var entry ledger.Entry
		err := rows.Scan(&entry.Key, &entry.Value)

		return entry, err
	}), nil
}

// executeQuery executes the SQL query and logs it with timing information.
func (l *Ledger) executeQuery(ctx context.Context, sqlQuery string, args []any, action string) (adapters.DBRows, error) {
	start := time.Now()
	rows, queryErr := l.db.Query(ctx, sqlQuery, args...)
	l.logQueryWithDuration(ctx, sqlQuery, action, time.Since(start))

	if queryErr != nil {
		l.logError(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		return nil, errors.Join(ledger.ErrStoreUnavailable, queryErr)
	}

	return rows, nil
}

// closeRows safely closes database rows and logs any errors.
func (l *Ledger) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		l.logWarn(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}

// documentOf returns the payload as a JSONB-compatible string if it is a JSON object, otherwise nil.
func documentOf(value []byte) any {
	for _, b := range value {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '{':
			if json.Valid(value) {
				return string(value)
			}

			return nil
		default:
			return nil
		}
	}

	return nil
}

var _ ledger.Ledger = (*Ledger)(nil)

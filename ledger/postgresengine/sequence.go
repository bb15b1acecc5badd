package postgresengine

import (
	"errors"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
	"github.com/AntonStoeckl/commodity-ledger-go/ledger/postgresengine/internal/adapters"
)

type scanFunc func(rows adapters.DBRows) (ledger.Entry, error)

// rowSequence streams entries from open database rows. Close releases the rows.
type rowSequence struct {
	rows    adapters.DBRows
	scan    scanFunc
	current ledger.Entry
	err     error
	closed  bool
}

func newRowSequence(rows adapters.DBRows, scan scanFunc) *rowSequence {
	return &rowSequence{rows: rows, scan: scan}
}

func (s *rowSequence) Next() bool {
	if s.closed || s.err != nil || !s.rows.Next() {
		return false
	}

	entry, err := s.scan(s.rows)
	if err != nil {
		s.err = errors.Join(ledger.ErrScanningRowFailed, err)
		return false
	}

	s.current = entry

	return true
}

func (s *rowSequence) Entry() ledger.Entry {
	return s.current
}

func (s *rowSequence) Err() error {
	if s.err != nil {
		return s.err
	}

	if err := s.rows.Err(); err != nil {
		return errors.Join(ledger.ErrStoreUnavailable, err)
	}

	return nil
}

func (s *rowSequence) Close() error {
	if s.closed {
		return ledger.ErrSequenceClosed
	}

	s.closed = true

	if err := s.rows.Close(); err != nil {
		return errors.Join(ledger.ErrStoreUnavailable, err)
	}

	return nil
}

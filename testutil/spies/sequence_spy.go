package spies

import (
	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
)

// SequenceSpy is a ledger.Sequence that counts Close calls and can inject failures.
type SequenceSpy struct {
	entries    []ledger.Entry
	pos        int
	iterErr    error
	closeErr   error
	closeCalls int
	pulled     int
}

// NewSequenceSpy creates a SequenceSpy yielding the given entries.
func NewSequenceSpy(entries ...ledger.Entry) *SequenceSpy {
	return &SequenceSpy{entries: entries, pos: -1}
}

// FailingIterationWith makes Err report err after the entries are exhausted.
func (s *SequenceSpy) FailingIterationWith(err error) *SequenceSpy {
	s.iterErr = err
	return s
}

// FailingCloseWith makes Close return err.
func (s *SequenceSpy) FailingCloseWith(err error) *SequenceSpy {
	s.closeErr = err
	return s
}

func (s *SequenceSpy) Next() bool {
	if s.pos+1 >= len(s.entries) {
		return false
	}

	s.pos++
	s.pulled++

	return true
}

func (s *SequenceSpy) Entry() ledger.Entry {
	return s.entries[s.pos]
}

func (s *SequenceSpy) Err() error {
	return s.iterErr
}

func (s *SequenceSpy) Close() error {
	s.closeCalls++
	return s.closeErr
}

// CloseCalls returns how often Close was called.
func (s *SequenceSpy) CloseCalls() int {
	return s.closeCalls
}

// Pulled returns how many entries were pulled.
func (s *SequenceSpy) Pulled() int {
	return s.pulled
}

var _ ledger.Sequence = (*SequenceSpy)(nil)

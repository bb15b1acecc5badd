package fabricengine

import (
	"errors"

	"github.com/hyperledger/fabric-chaincode-go/shim"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
)

type historySequence struct {
	iter    shim.HistoryQueryIteratorInterface
	key     string
	current ledger.Entry
	err     error
	closed  bool
}

func (s *historySequence) Next() bool {
	if s.closed || s.err != nil || !s.iter.HasNext() {
		return false
	}

	modification, err := s.iter.Next()
	if err != nil {
		s.err = errors.Join(ledger.ErrStoreUnavailable, err)
		return false
	}

	s.current = ledger.Entry{
		Key:      s.key,
		Value:    modification.GetValue(),
		IsDelete: modification.GetIsDelete(),
		TxID:     modification.GetTxId(),
	}

	if ts := modification.GetTimestamp(); ts != nil {
		s.current.Timestamp = ts.AsTime()
	}

	return true
}

func (s *historySequence) Entry() ledger.Entry {
	return s.current
}

func (s *historySequence) Err() error {
	return s.err
}

func (s *historySequence) Close() error {
	if s.closed {
		return ledger.ErrSequenceClosed
	}

	s.closed = true

	if err := s.iter.Close(); err != nil {
		return errors.Join(ledger.ErrStoreUnavailable, err)
	}

	return nil
}

type querySequence struct {
	iter    shim.StateQueryIteratorInterface
	current ledger.Entry
	err     error
	closed  bool
}

func (s *querySequence) Next() bool {
	if s.closed || s.err != nil || !s.iter.HasNext() {
		return false
	}

	kv, err := s.iter.Next()
	if err != nil {
		s.err = errors.Join(ledger.ErrStoreUnavailable, err)
		return false
	}

	s.current = ledger.Entry{Key: kv.GetKey(), Value: kv.GetValue()}

	return true
}

func (s *querySequence) Entry() ledger.Entry {
	return s.current
}

func (s *querySequence) Err() error {
	return s.err
}

func (s *querySequence) Close() error {
	if s.closed {
		return ledger.ErrSequenceClosed
	}

	s.closed = true

	if err := s.iter.Close(); err != nil {
		return errors.Join(ledger.ErrStoreUnavailable, err)
	}

	return nil
}

// Package fabricengine adapts a Hyperledger Fabric chaincode stub to ledger.Ledger.
//
// World-state reads and writes map onto GetState, PutState and DelState. History comes from
// GetHistoryForKey and rich queries are sent to GetQueryResult as CouchDB selector JSON, so
// the peer must run with CouchDB as its state database for Query to work.
package fabricengine

import (
	"context"
	"errors"

	"github.com/hyperledger/fabric-chaincode-go/shim"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
)

const (
	logMsgOperation = "fabric ledger operation: "
	logMsgQuery     = "fabric rich query"
	logAttrKey      = "key"
	logAttrQuery    = "query"
	logAttrTxID     = "tx_id"
)

// Ledger is a ledger.Ledger bound to the stub of one chaincode invocation.
type Ledger struct {
	stub   shim.ChaincodeStubInterface
	logger ledger.Logger
}

// Option configures a Ledger.
type Option func(*Ledger) error

// WithLogger sets the logger receiving debug-level operation messages.
func WithLogger(logger ledger.Logger) Option {
	return func(l *Ledger) error {
		l.logger = logger
		return nil
	}
}

// NewLedger creates a Ledger for one invocation. The context passed to its methods is not
// forwarded; the stub carries the transaction.
func NewLedger(stub shim.ChaincodeStubInterface, opts ...Option) (*Ledger, error) {
	if stub == nil {
		return nil, ledger.ErrNilStub
	}

	l := &Ledger{stub: stub}

	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}

	return l, nil
}

func (l *Ledger) Get(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ledger.ErrEmptyKey
	}

	value, err := l.stub.GetState(key)
	if err != nil {
		return nil, errors.Join(ledger.ErrStoreUnavailable, err)
	}

	if len(value) == 0 {
		return nil, nil
	}

	return value, nil
}

func (l *Ledger) Put(_ context.Context, key string, value []byte) error {
	if key == "" {
		return ledger.ErrEmptyKey
	}

	if err := l.stub.PutState(key, value); err != nil {
		return errors.Join(ledger.ErrStoreUnavailable, err)
	}

	l.debug("put", key)

	return nil
}

func (l *Ledger) Delete(_ context.Context, key string) error {
	if key == "" {
		return ledger.ErrEmptyKey
	}

	if err := l.stub.DelState(key); err != nil {
		return errors.Join(ledger.ErrStoreUnavailable, err)
	}

	l.debug("delete", key)

	return nil
}

func (l *Ledger) HistoryOf(_ context.Context, key string) (ledger.Sequence, error) {
	if key == "" {
		return nil, ledger.ErrEmptyKey
	}

	iter, err := l.stub.GetHistoryForKey(key)
	if err != nil {
		return nil, errors.Join(ledger.ErrStoreUnavailable, err)
	}

	return &historySequence{iter: iter, key: key}, nil
}

// Query sends the selector to the state database as a CouchDB rich query.
func (l *Ledger) Query(_ context.Context, selector ledger.Selector) (ledger.Sequence, error) {
	query, err := selector.MarshalJSON()
	if err != nil {
		return nil, errors.Join(ledger.ErrEncodingSelectorFailed, err)
	}

	if l.logger != nil {
		l.logger.Debug(logMsgQuery, logAttrQuery, string(query), logAttrTxID, l.stub.GetTxID())
	}

	iter, err := l.stub.GetQueryResult(string(query))
	if err != nil {
		return nil, errors.Join(ledger.ErrStoreUnavailable, err)
	}

	return &querySequence{iter: iter}, nil
}

func (l *Ledger) debug(action, key string) {
	if l.logger != nil {
		l.logger.Debug(logMsgOperation+action, logAttrKey, key, logAttrTxID, l.stub.GetTxID())
	}
}

var _ ledger.Ledger = (*Ledger)(nil)

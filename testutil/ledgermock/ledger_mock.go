// Package ledgermock provides a testify mock of ledger.Ledger for handler tests
// that must prove which port calls were made, and which were not.
package ledgermock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
)

// Ledger is a mock.Mock backed ledger.Ledger.
type Ledger struct {
	mock.Mock
}

// New returns a Ledger mock whose expectations are asserted when the test ends.
func New(t interface {
	mock.TestingT
	Cleanup(func())
}) *Ledger {
	l := &Ledger{}
	l.Test(t)
	t.Cleanup(func() { l.AssertExpectations(t) })

	return l
}

func (l *Ledger) Get(ctx context.Context, key string) ([]byte, error) {
	args := l.Called(ctx, key)
	value, _ := args.Get(0).([]byte)

	return value, args.Error(1)
}

func (l *Ledger) Put(ctx context.Context, key string, value []byte) error {
	return l.Called(ctx, key, value).Error(0)
}

func (l *Ledger) Delete(ctx context.Context, key string) error {
	return l.Called(ctx, key).Error(0)
}

func (l *Ledger) HistoryOf(ctx context.Context, key string) (ledger.Sequence, error) {
	args := l.Called(ctx, key)
	seq, _ := args.Get(0).(ledger.Sequence)

	return seq, args.Error(1)
}

func (l *Ledger) Query(ctx context.Context, selector ledger.Selector) (ledger.Sequence, error) {
	args := l.Called(ctx, selector)
	seq, _ := args.Get(0).(ledger.Sequence)

	return seq, args.Error(1)
}

var _ ledger.Ledger = (*Ledger)(nil)

package memengine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
	"github.com/AntonStoeckl/commodity-ledger-go/ledger/memengine"
	"github.com/AntonStoeckl/commodity-ledger-go/testutil/ledgertest"
)

func Test_Ledger_Conformance(t *testing.T) {
	ledgertest.Run(t, func(_ *testing.T) ledger.Ledger {
		return memengine.NewLedger()
	})
}

func Test_Ledger_UsesInjectedClockAndTxIDs(t *testing.T) {
	// arrange
	fakeClock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	l := memengine.NewLedger(
		memengine.WithClock(func() time.Time { return fakeClock }),
		memengine.WithTxIDGenerator(func() string { return "tx-1" }),
	)
	ctx := context.Background()
	require.NoError(t, l.Put(ctx, "GOLD", []byte(`{}`)))

	// act
	seq, err := l.HistoryOf(ctx, "GOLD")
	require.NoError(t, err)
	defer func() { _ = seq.Close() }()

	// assert
	require.True(t, seq.Next())
	assert.Equal(t, "tx-1", seq.Entry().TxID)
	assert.Equal(t, fakeClock, seq.Entry().Timestamp)
}

func Test_Ledger_Get_ReturnsCopy(t *testing.T) {
	// arrange
	ctx := context.Background()
	l := memengine.NewLedger()
	require.NoError(t, l.Put(ctx, "GOLD", []byte(`{"a":1}`)))

	// act
	value, err := l.Get(ctx, "GOLD")
	require.NoError(t, err)
	value[0] = 'X'

	// assert
	again, err := l.Get(ctx, "GOLD")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(again), "callers must not be able to mutate stored versions")
}

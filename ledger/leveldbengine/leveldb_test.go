package leveldbengine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
	"github.com/AntonStoeckl/commodity-ledger-go/ledger/leveldbengine"
	"github.com/AntonStoeckl/commodity-ledger-go/testutil/ledgertest"
)

func newMemDB(t *testing.T) *leveldb.DB {
	t.Helper()

	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func Test_Ledger_Conformance(t *testing.T) {
	ledgertest.Run(t, func(t *testing.T) ledger.Ledger {
		l, err := leveldbengine.NewLedger(newMemDB(t))
		require.NoError(t, err)

		return l
	})
}

func Test_NewLedger_NilDB(t *testing.T) {
	_, err := leveldbengine.NewLedger(nil)

	assert.ErrorIs(t, err, leveldbengine.ErrNilDB)
}

func Test_Ledger_SequenceCounterSurvivesReopen(t *testing.T) {
	// setup
	ctx := context.Background()
	db := newMemDB(t)

	// arrange
	first, err := leveldbengine.NewLedger(db)
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, "GOLD", []byte(`{"v":1}`)))

	// act
	second, err := leveldbengine.NewLedger(db)
	require.NoError(t, err)
	require.NoError(t, second.Put(ctx, "GOLD", []byte(`{"v":2}`)))

	// assert
	seq, err := second.HistoryOf(ctx, "GOLD")
	require.NoError(t, err)
	values, err := ledger.Drain(ctx, seq, func(payload []byte) (string, error) { return string(payload), nil })
	require.NoError(t, err)
	assert.Equal(t, []string{`{"v":1}`, `{"v":2}`}, values, "a reopened ledger must not overwrite earlier versions")
}

func Test_Ledger_HistoryOf_DoesNotLeakIntoKeysWithSamePrefix(t *testing.T) {
	// arrange
	ctx := context.Background()
	l, err := leveldbengine.NewLedger(newMemDB(t))
	require.NoError(t, err)
	require.NoError(t, l.Put(ctx, "GOLD", []byte(`{"v":"gold"}`)))
	require.NoError(t, l.Put(ctx, "GOLDEN", []byte(`{"v":"golden"}`)))

	// act
	seq, err := l.HistoryOf(ctx, "GOLD")
	require.NoError(t, err)
	values, err := ledger.Drain(ctx, seq, func(payload []byte) (string, error) { return string(payload), nil })

	// assert
	require.NoError(t, err)
	assert.Equal(t, []string{`{"v":"gold"}`}, values)
}

func Test_Ledger_Open_PersistsToDisk(t *testing.T) {
	// setup
	ctx := context.Background()
	dir := t.TempDir()

	// arrange
	l, err := leveldbengine.Open(dir)
	require.NoError(t, err)
	require.NoError(t, l.Put(ctx, "COAL", []byte(`{"docType":"commodity"}`)))
	require.NoError(t, l.Close())

	// act
	reopened, err := leveldbengine.Open(dir)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	value, err := reopened.Get(ctx, "COAL")

	// assert
	require.NoError(t, err)
	assert.JSONEq(t, `{"docType":"commodity"}`, string(value))
}

func Test_Ledger_Close_IsNoOpForBorrowedDB(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := newMemDB(t)
	l, err := leveldbengine.NewLedger(db)
	require.NoError(t, err)

	// act
	require.NoError(t, l.Close())

	// assert
	assert.NoError(t, l.Put(ctx, "STILL", []byte(`{}`)), "the caller still owns the database")
}

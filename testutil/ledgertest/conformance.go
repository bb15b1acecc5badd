// Package ledgertest holds the behavioral contract every ledger.Ledger engine must satisfy,
// expressed as a reusable test suite.
package ledgertest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
)

// Factory returns a fresh, empty ledger for one subtest.
type Factory func(t *testing.T) ledger.Ledger

// Run executes the conformance suite against the engine produced by newLedger.
func Run(t *testing.T, newLedger Factory) {
	t.Helper()

	t.Run("Get_NeverWritten_ReturnsNil", func(t *testing.T) {
		l := newLedger(t)

		value, err := l.Get(context.Background(), "NOPE")

		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("Put_Then_Get_ReturnsLatestValue", func(t *testing.T) {
		ctx := context.Background()
		l := newLedger(t)

		require.NoError(t, l.Put(ctx, "GOLD", []byte(`{"docType":"commodity","quantity":1}`)))
		require.NoError(t, l.Put(ctx, "GOLD", []byte(`{"docType":"commodity","quantity":2}`)))
		value, err := l.Get(ctx, "GOLD")

		require.NoError(t, err)
		assert.JSONEq(t, `{"docType":"commodity","quantity":2}`, string(value))
	})

	t.Run("Delete_Then_Get_ReturnsNil", func(t *testing.T) {
		ctx := context.Background()
		l := newLedger(t)

		require.NoError(t, l.Put(ctx, "GOLD", []byte(`{"docType":"commodity"}`)))
		require.NoError(t, l.Delete(ctx, "GOLD"))
		value, err := l.Get(ctx, "GOLD")

		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("EmptyKey_IsRejected", func(t *testing.T) {
		ctx := context.Background()
		l := newLedger(t)

		assert.Error(t, l.Put(ctx, "", []byte(`{}`)))
		_, err := l.Get(ctx, "")
		assert.Error(t, err)
	})

	t.Run("HistoryOf_ReturnsAllVersionsChronologically", func(t *testing.T) {
		ctx := context.Background()
		l := newLedger(t)

		require.NoError(t, l.Put(ctx, "CORN", []byte(`{"v":1}`)))
		require.NoError(t, l.Put(ctx, "CORN", []byte(`{"v":2}`)))
		require.NoError(t, l.Delete(ctx, "CORN"))
		require.NoError(t, l.Put(ctx, "CORN", []byte(`{"v":3}`)))
		require.NoError(t, l.Put(ctx, "OTHER", []byte(`{"v":99}`)))

		entries := collect(t)(l.HistoryOf(ctx, "CORN"))

		require.Len(t, entries, 4)
		assert.JSONEq(t, `{"v":1}`, string(entries[0].Value))
		assert.JSONEq(t, `{"v":2}`, string(entries[1].Value))
		assert.True(t, entries[2].IsDelete)
		assert.True(t, entries[2].IsTombstone())
		assert.JSONEq(t, `{"v":3}`, string(entries[3].Value))

		for _, entry := range entries {
			assert.NotEmpty(t, entry.TxID, "every version carries a transaction id")
			assert.False(t, entry.Timestamp.IsZero(), "every version carries a timestamp")
		}
	})

	t.Run("HistoryOf_NeverWritten_IsEmpty", func(t *testing.T) {
		l := newLedger(t)

		entries := collect(t)(l.HistoryOf(context.Background(), "NOPE"))

		assert.Empty(t, entries)
	})

	t.Run("Query_MatchesCurrentLiveValuesOnly", func(t *testing.T) {
		ctx := context.Background()
		l := newLedger(t)

		require.NoError(t, l.Put(ctx, "GOLD", []byte(`{"docType":"commodity","owner":"Trader1"}`)))
		require.NoError(t, l.Put(ctx, "COAL", []byte(`{"docType":"commodity","owner":"Trader1"}`)))
		require.NoError(t, l.Put(ctx, "COAL", []byte(`{"docType":"commodity","owner":"Trader2"}`)))
		require.NoError(t, l.Put(ctx, "CORN", []byte(`{"docType":"commodity","owner":"Trader1"}`)))
		require.NoError(t, l.Delete(ctx, "CORN"))
		require.NoError(t, l.Put(ctx, "Trader1", []byte(`{"docType":"trader","owner":"Trader1"}`)))

		selector := ledger.BuildSelector().
			MatchingDocType("commodity").
			AndAllFieldsOf(ledger.F("owner", "Trader1")).
			Finalize()

		entries := collect(t)(l.Query(ctx, selector))

		require.Len(t, entries, 1)
		assert.Equal(t, "GOLD", entries[0].Key)
		assert.JSONEq(t, `{"docType":"commodity","owner":"Trader1"}`, string(entries[0].Value))
	})

	t.Run("Query_ValuesAreMatchedLiterally", func(t *testing.T) {
		ctx := context.Background()
		l := newLedger(t)

		require.NoError(t, l.Put(ctx, "A", []byte(`{"docType":"commodity","owner":"O'Brien \"Q\""}`)))
		require.NoError(t, l.Put(ctx, "B", []byte(`{"docType":"commodity","owner":"OBrien"}`)))

		selector := ledger.BuildSelector().
			MatchingDocType("commodity").
			AndAllFieldsOf(ledger.F("owner", `O'Brien "Q"`)).
			Finalize()

		entries := collect(t)(l.Query(ctx, selector))

		require.Len(t, entries, 1)
		assert.Equal(t, "A", entries[0].Key)
	})

	t.Run("Query_NoMatches_IsEmpty", func(t *testing.T) {
		ctx := context.Background()
		l := newLedger(t)

		require.NoError(t, l.Put(ctx, "GOLD", []byte(`{"docType":"commodity","mainExchange":"London"}`)))

		selector := ledger.BuildSelector().
			MatchingDocType("commodity").
			AndAllFieldsOf(ledger.F("mainExchange", "Newport")).
			Finalize()

		entries := collect(t)(l.Query(ctx, selector))

		assert.Empty(t, entries)
	})
}

// collect returns a function that drains a sequence without decoding, keeping tombstones.
func collect(t *testing.T) func(seq ledger.Sequence, err error) []ledger.Entry {
	t.Helper()

	return func(seq ledger.Sequence, err error) []ledger.Entry {
		require.NoError(t, err)

		entries := make([]ledger.Entry, 0)
		for seq.Next() {
			entries = append(entries, seq.Entry())
		}

		require.NoError(t, seq.Err())
		require.NoError(t, seq.Close())

		return entries
	}
}

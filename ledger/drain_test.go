package ledger_test

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
	"github.com/AntonStoeckl/commodity-ledger-go/testutil/spies"
)

func decodeInt(payload []byte) (int, error) {
	return strconv.Atoi(string(payload))
}

func Test_Drain_DecodesAllEntriesInOrder(t *testing.T) {
	// arrange
	seq := spies.NewSequenceSpy(
		ledger.Entry{Value: []byte("1")},
		ledger.Entry{Value: []byte("2")},
		ledger.Entry{Value: []byte("3")},
	)

	// act
	results, err := ledger.Drain(context.Background(), seq, decodeInt)

	// assert
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, results)
	assert.Equal(t, 1, seq.CloseCalls(), "sequence must be released exactly once")
}

func Test_Drain_SkipsTombstones(t *testing.T) {
	// arrange
	seq := spies.NewSequenceSpy(
		ledger.Entry{Value: []byte("1")},
		ledger.Entry{IsDelete: true},
		ledger.Entry{Value: []byte("2")},
	)

	// act
	results, err := ledger.Drain(context.Background(), seq, decodeInt)

	// assert
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, results)
	assert.Equal(t, 3, seq.Pulled())
}

func Test_Drain_EmptySequence_YieldsEmptyNonNilSlice(t *testing.T) {
	// arrange
	seq := spies.NewSequenceSpy()

	// act
	results, err := ledger.Drain(context.Background(), seq, decodeInt)

	// assert
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
	assert.Equal(t, 1, seq.CloseCalls())
}

func Test_Drain_DecodeFailure_FailsWholeDrainAndStillReleases(t *testing.T) {
	// arrange
	seq := spies.NewSequenceSpy(
		ledger.Entry{Value: []byte("1")},
		ledger.Entry{Value: []byte("not-a-number")},
		ledger.Entry{Value: []byte("3")},
	)

	// act
	results, err := ledger.Drain(context.Background(), seq, decodeInt)

	// assert
	assert.ErrorIs(t, err, ledger.ErrDecodingEntryFailed)
	assert.Nil(t, results, "partial results must not leak")
	assert.Equal(t, 2, seq.Pulled(), "drain stops at the first failure")
	assert.Equal(t, 1, seq.CloseCalls())
}

func Test_Drain_IterationFailure_IsReportedAndStillReleases(t *testing.T) {
	// arrange
	storeErr := errors.New("connection reset")
	seq := spies.NewSequenceSpy(ledger.Entry{Value: []byte("1")}).FailingIterationWith(storeErr)

	// act
	results, err := ledger.Drain(context.Background(), seq, decodeInt)

	// assert
	assert.ErrorIs(t, err, ledger.ErrSequenceFailed)
	assert.ErrorIs(t, err, storeErr)
	assert.Nil(t, results)
	assert.Equal(t, 1, seq.CloseCalls())
}

func Test_Drain_ReleaseFailure_IsSwallowedAndLogged(t *testing.T) {
	// setup
	logger, logSpy := spies.NewSpyLogger()

	// arrange
	seq := spies.NewSequenceSpy(ledger.Entry{Value: []byte("7")}).FailingCloseWith(errors.New("iterator already gone"))

	// act
	results, err := ledger.Drain(context.Background(), seq, decodeInt, ledger.WithDrainLogger(logger))

	// assert
	require.NoError(t, err, "release failures must not fail the drain")
	assert.Equal(t, []int{7}, results)
	assert.True(t, logSpy.HasLogWithMessage(slog.LevelWarn, "failed to release result sequence").
		WithAttr("error", "iterator already gone").
		Assert())
}

func Test_Drain_ReleaseFailure_PrefersContextualLogger(t *testing.T) {
	// setup
	logger, logSpy := spies.NewSpyLogger()
	contextualLogger := spies.NewContextualLoggerSpy(true)

	// arrange
	seq := spies.NewSequenceSpy().FailingCloseWith(errors.New("boom"))

	// act
	_, err := ledger.Drain(
		context.Background(),
		seq,
		decodeInt,
		ledger.WithDrainLogger(logger),
		ledger.WithDrainContextualLogger(contextualLogger),
	)

	// assert
	require.NoError(t, err)
	assert.True(t, contextualLogger.HasWarnLog("failed to release result sequence"))
	assert.False(t, logSpy.HasLog(slog.LevelWarn, "failed to release result sequence"))
}

func Test_SliceSequence_SecondCloseReportsClosed(t *testing.T) {
	// arrange
	seq := ledger.NewSliceSequence([]ledger.Entry{{Value: []byte("1")}})

	// act
	firstErr := seq.Close()
	secondErr := seq.Close()

	// assert
	assert.NoError(t, firstErr)
	assert.ErrorIs(t, secondErr, ledger.ErrSequenceClosed)
	assert.False(t, seq.Next(), "a closed sequence yields nothing")
}

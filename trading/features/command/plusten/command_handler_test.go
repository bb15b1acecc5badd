package plusten_test

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
	"github.com/AntonStoeckl/commodity-ledger-go/ledger/memengine"
	"github.com/AntonStoeckl/commodity-ledger-go/testutil/ledgermock"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/core"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/features/command/plusten"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/shell"
)

func Test_CommandHandler_Handle_TwiceAddsTwenty(t *testing.T) {
	// arrange
	ctx := context.Background()
	l := memengine.NewLedger()
	require.NoError(t, l.Put(ctx, "CORN", []byte(`{"docType":"commodity","quantity":200,"owner":"Trader3"}`)))
	handler := plusten.NewCommandHandler(l)

	// act
	first, err := handler.Handle(ctx, plusten.BuildCommand("CORN"))
	require.NoError(t, err)
	second, err := handler.Handle(ctx, plusten.BuildCommand("CORN"))
	require.NoError(t, err)

	// assert
	assert.Equal(t, "New Quantity:  210", first.Message)
	assert.Equal(t, "New Quantity:  220", second.Message)

	stored, err := l.Get(ctx, "CORN")
	require.NoError(t, err)
	commodity, err := core.DecodeCommodity(stored)
	require.NoError(t, err)
	assert.Equal(t, int64(220), commodity.Quantity)
	assert.Equal(t, "Trader3", commodity.Owner)
}

func Test_CommandHandler_Handle_AbsentKeyWritesNothing(t *testing.T) {
	// arrange
	l := ledgermock.New(t)
	l.On("Get", mock.Anything, "KORNE").Return(nil, nil).Once()
	handler := plusten.NewCommandHandler(l)

	// act
	result, err := handler.Handle(context.Background(), plusten.BuildCommand("KORNE"))

	// assert
	require.NoError(t, err)
	assert.Equal(t, shell.OutcomeRecordAbsent, result.Outcome)
	assert.Equal(t, "No Commodity with that Key: KORNE", result.Message)
	l.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
}

func Test_CommandHandler_Handle_TraderKeyWritesNothing(t *testing.T) {
	// arrange
	l := ledgermock.New(t)
	l.On("Get", mock.Anything, "Trader1").Return([]byte(`{"docType":"trader","firstName":"Jenny"}`), nil).Once()
	handler := plusten.NewCommandHandler(l)

	// act
	result, err := handler.Handle(context.Background(), plusten.BuildCommand("Trader1"))

	// assert
	require.NoError(t, err)
	assert.Equal(t, shell.OutcomeTypeMismatch, result.Outcome)
	l.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
}

func Test_CommandHandler_Handle_ReadsWithStrongConsistency(t *testing.T) {
	// arrange
	l := ledgermock.New(t)
	strong := mock.MatchedBy(func(ctx context.Context) bool {
		return ledger.GetConsistencyLevel(ctx) == ledger.StrongConsistency
	})
	l.On("Get", strong, "GOLD").Return([]byte(`{"docType":"commodity","quantity":100}`), nil).Once()
	l.On("Put", strong, "GOLD", mock.Anything).Return(nil).Once()
	handler := plusten.NewCommandHandler(l)

	// act
	_, err := handler.Handle(ledger.WithEventualConsistency(context.Background()), plusten.BuildCommand("GOLD"))

	// assert
	assert.NoError(t, err)
}

func Test_CommandHandler_Handle_MalformedPayload(t *testing.T) {
	// arrange
	l := ledgermock.New(t)
	l.On("Get", mock.Anything, "BROKEN").Return([]byte(`{"docType":"commodity","quantity":"lots"}`), nil).Once()
	handler := plusten.NewCommandHandler(l)

	// act
	_, err := handler.Handle(context.Background(), plusten.BuildCommand("BROKEN"))

	// assert
	assert.ErrorIs(t, err, core.ErrMalformedRecord)
	l.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
}

func Test_CommandHandler_Handle_QuantityOverflowLeavesRecordUnchanged(t *testing.T) {
	// arrange
	ctx := context.Background()
	l := memengine.NewLedger()
	original := []byte(fmt.Sprintf(`{"docType":"commodity","quantity":%d}`, int64(math.MaxInt64)))
	require.NoError(t, l.Put(ctx, "GOLD", original))
	handler := plusten.NewCommandHandler(l)

	// act
	_, err := handler.Handle(ctx, plusten.BuildCommand("GOLD"))

	// assert
	assert.ErrorIs(t, err, core.ErrQuantityOverflow)

	stored, err := l.Get(ctx, "GOLD")
	require.NoError(t, err)
	commodity, err := core.DecodeCommodity(stored)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), commodity.Quantity)
}

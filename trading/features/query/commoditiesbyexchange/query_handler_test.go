package commoditiesbyexchange_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
	"github.com/AntonStoeckl/commodity-ledger-go/ledger/memengine"
	"github.com/AntonStoeckl/commodity-ledger-go/testutil/ledgermock"
	"github.com/AntonStoeckl/commodity-ledger-go/testutil/spies"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/core"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/features/command/setupdemo"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/features/query/commoditiesbyexchange"
)

func Test_QueryHandler_Handle_AfterSetupDemo(t *testing.T) {
	// setup
	ctx := context.Background()
	l := memengine.NewLedger()
	_, err := setupdemo.NewCommandHandler(l).Handle(ctx, setupdemo.BuildCommand())
	require.NoError(t, err)
	handler := commoditiesbyexchange.NewQueryHandler(l)

	t.Run("Cardiff", func(t *testing.T) {
		// act
		commodities, err := handler.Handle(ctx, commoditiesbyexchange.BuildQuery("Cardiff"))

		// assert
		require.NoError(t, err)
		assert.Equal(t, []core.Commodity{{Description: "Black Gold", MainExchange: "Cardiff", Quantity: 300, Owner: "Trader2"}}, commodities)
	})

	t.Run("London", func(t *testing.T) {
		commodities, err := handler.Handle(ctx, commoditiesbyexchange.BuildQuery("London"))

		require.NoError(t, err)
		require.Len(t, commodities, 1)
		assert.Equal(t, "Yellow Bars", commodities[0].Description)
	})

	t.Run("Newport", func(t *testing.T) {
		commodities, err := handler.Handle(ctx, commoditiesbyexchange.BuildQuery("Newport"))

		require.NoError(t, err)
		assert.NotNil(t, commodities)
		assert.Empty(t, commodities)
	})
}

func Test_BuildSelector(t *testing.T) {
	selector := commoditiesbyexchange.BuildSelector(`Lon"don`)

	selectorJSON, err := selector.MarshalJSON()

	require.NoError(t, err)
	assert.JSONEq(t, `{"selector":{"docType":"commodity","mainExchange":"Lon\"don"}}`, string(selectorJSON))
}

func Test_QueryHandler_Handle_HonorsCallersStrongConsistency(t *testing.T) {
	// arrange
	l := ledgermock.New(t)
	strong := mock.MatchedBy(func(ctx context.Context) bool {
		return ledger.GetConsistencyLevel(ctx) == ledger.StrongConsistency
	})
	l.On("Query", strong, commoditiesbyexchange.BuildSelector("Cardiff")).Return(spies.NewSequenceSpy(), nil).Once()
	ctx := ledger.WithStrongConsistency(context.Background())

	// act
	commodities, err := commoditiesbyexchange.NewQueryHandler(l).Handle(ctx, commoditiesbyexchange.BuildQuery("Cardiff"))

	// assert
	require.NoError(t, err)
	assert.Empty(t, commodities)
}

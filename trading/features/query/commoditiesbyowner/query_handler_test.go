package commoditiesbyowner_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
	"github.com/AntonStoeckl/commodity-ledger-go/ledger/memengine"
	"github.com/AntonStoeckl/commodity-ledger-go/testutil/ledgermock"
	"github.com/AntonStoeckl/commodity-ledger-go/testutil/spies"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/core"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/features/query/commoditiesbyowner"
)

func Test_QueryHandler_Handle_ReturnsCurrentCommoditiesOfOwner(t *testing.T) {
	// arrange
	ctx := context.Background()
	l := memengine.NewLedger()
	require.NoError(t, l.Put(ctx, "GOLD", []byte(`{"docType":"commodity","description":"Yellow Bars","owner":"Trader1"}`)))
	require.NoError(t, l.Put(ctx, "CORN", []byte(`{"docType":"commodity","description":"Corn","owner":"Trader3"}`)))
	require.NoError(t, l.Put(ctx, "CORN", []byte(`{"docType":"commodity","description":"Corn","owner":"Trader1"}`)))
	require.NoError(t, l.Put(ctx, "COAL", []byte(`{"docType":"commodity","description":"Black Gold","owner":"Trader1"}`)))
	require.NoError(t, l.Delete(ctx, "COAL"))
	require.NoError(t, l.Put(ctx, "Trader1", []byte(`{"docType":"trader","firstName":"Jenny"}`)))

	// act
	commodities, err := commoditiesbyowner.NewQueryHandler(l).Handle(ctx, commoditiesbyowner.BuildQuery("Trader1"))

	// assert
	require.NoError(t, err)
	assert.ElementsMatch(t, []core.Commodity{
		{Description: "Yellow Bars", Owner: "Trader1"},
		{Description: "Corn", Owner: "Trader1"},
	}, commodities)
}

func Test_QueryHandler_Handle_PassesStructuredSelector(t *testing.T) {
	// arrange
	l := ledgermock.New(t)
	owner := `Trader1","docType":"trader`
	l.On("Query", mock.Anything, commoditiesbyowner.BuildSelector(owner)).Return(spies.NewSequenceSpy(), nil).Once()

	// act
	commodities, err := commoditiesbyowner.NewQueryHandler(l).Handle(context.Background(), commoditiesbyowner.BuildQuery(owner))

	// assert
	require.NoError(t, err)
	assert.Empty(t, commodities)
}

func Test_QueryHandler_Handle_SequenceFailure(t *testing.T) {
	// arrange
	seq := spies.NewSequenceSpy().FailingIterationWith(errors.New("peer went away"))
	l := ledgermock.New(t)
	l.On("Query", mock.Anything, mock.Anything).Return(seq, nil).Once()

	// act
	_, err := commoditiesbyowner.NewQueryHandler(l).Handle(context.Background(), commoditiesbyowner.BuildQuery("Trader1"))

	// assert
	assert.ErrorIs(t, err, ledger.ErrSequenceFailed)
	assert.Equal(t, 1, seq.CloseCalls())
}

func Test_QueryHandler_Handle_QueryFailure(t *testing.T) {
	// arrange
	l := ledgermock.New(t)
	l.On("Query", mock.Anything, mock.Anything).Return(nil, ledger.ErrStoreUnavailable).Once()

	// act
	_, err := commoditiesbyowner.NewQueryHandler(l).Handle(context.Background(), commoditiesbyowner.BuildQuery("Trader1"))

	// assert
	assert.ErrorIs(t, err, ledger.ErrStoreUnavailable)
}

func Test_QueryHandler_Handle_ConsistencyLevel(t *testing.T) {
	for name, tc := range map[string]struct {
		ctx  context.Context
		want ledger.ConsistencyLevel
	}{
		"defaults to eventual": {ctx: context.Background(), want: ledger.EventualConsistency},
		"honors caller strong": {ctx: ledger.WithStrongConsistency(context.Background()), want: ledger.StrongConsistency},
	} {
		t.Run(name, func(t *testing.T) {
			// arrange
			l := ledgermock.New(t)
			atLevel := mock.MatchedBy(func(ctx context.Context) bool {
				return ledger.GetConsistencyLevel(ctx) == tc.want
			})
			l.On("Query", atLevel, mock.Anything).Return(spies.NewSequenceSpy(), nil).Once()

			// act
			_, err := commoditiesbyowner.NewQueryHandler(l).Handle(tc.ctx, commoditiesbyowner.BuildQuery("Trader1"))

			// assert
			assert.NoError(t, err)
		})
	}
}

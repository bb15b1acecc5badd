package createtrader_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
	"github.com/AntonStoeckl/commodity-ledger-go/ledger/memengine"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/core"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/features/command/createtrader"
)

func Test_CommandHandler_Handle_StoresTrader(t *testing.T) {
	// arrange
	ctx := context.Background()
	l := memengine.NewLedger()
	handler := createtrader.NewCommandHandler(l)

	// act
	result, err := handler.Handle(ctx, createtrader.BuildCommand("TRADER3", core.Trader{FirstName: "Rainer", LastName: "Valens"}))

	// assert
	require.NoError(t, err)
	assert.Equal(t, "Trader Created: TRADER3", result.Message)

	stored, err := l.Get(ctx, "TRADER3")
	require.NoError(t, err)
	assert.JSONEq(t, `{"docType":"trader","firstName":"Rainer","lastName":"Valens"}`, string(stored))
}

func Test_CommandHandler_Handle_EmptyKey(t *testing.T) {
	// arrange
	handler := createtrader.NewCommandHandler(memengine.NewLedger())

	// act
	_, err := handler.Handle(context.Background(), createtrader.BuildCommand("", core.Trader{}))

	// assert
	assert.ErrorIs(t, err, ledger.ErrEmptyKey)
}

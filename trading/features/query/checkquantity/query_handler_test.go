package checkquantity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger/memengine"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/core"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/features/query/checkquantity"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/shell"
)

func Test_QueryHandler_Handle(t *testing.T) {
	// setup
	ctx := context.Background()
	l := memengine.NewLedger()
	require.NoError(t, l.Put(ctx, "CORN", []byte(`{"docType":"commodity","quantity":200}`)))
	require.NoError(t, l.Put(ctx, "Trader1", []byte(`{"docType":"trader","firstName":"Jenny"}`)))
	require.NoError(t, l.Put(ctx, "GONE", []byte(`{"docType":"commodity","quantity":5}`)))
	require.NoError(t, l.Delete(ctx, "GONE"))
	require.NoError(t, l.Put(ctx, "RYE", []byte(`{"description":"x","quantity":5}`)))
	handler := checkquantity.NewQueryHandler(l)

	testCases := []struct {
		key         string
		wantOutcome string
		wantMessage string
	}{
		{"CORN", shell.OutcomeApplied, "Checked Quantity: 200"},
		{"KORNE", shell.OutcomeRecordAbsent, "No Commodity with that Key: KORNE"},
		{"GONE", shell.OutcomeRecordAbsent, "No Commodity with that Key: GONE"},
		{"RYE", shell.OutcomeApplied, "Checked Quantity: 5"},
		{"Trader1", shell.OutcomeTypeMismatch, "Key exists, but Not a Commodity: Trader1"},
	}

	for _, tc := range testCases {
		t.Run(tc.key, func(t *testing.T) {
			// act
			result, err := handler.Handle(ctx, checkquantity.BuildQuery(tc.key))

			// assert
			require.NoError(t, err)
			assert.Equal(t, tc.wantOutcome, result.Outcome)
			assert.Equal(t, tc.wantMessage, result.Message)
		})
	}
}

func Test_QueryHandler_Handle_MalformedPayload(t *testing.T) {
	// arrange
	ctx := context.Background()
	l := memengine.NewLedger()
	require.NoError(t, l.Put(ctx, "RAW", []byte(`not json`)))

	// act
	_, err := checkquantity.NewQueryHandler(l).Handle(ctx, checkquantity.BuildQuery("RAW"))

	// assert
	assert.ErrorIs(t, err, core.ErrMalformedRecord)
}

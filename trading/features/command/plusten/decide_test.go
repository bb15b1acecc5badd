package plusten_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/commodity-ledger-go/trading/core"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/features/command/plusten"
)

func Test_Decide_RaisesQuantityByTen(t *testing.T) {
	// arrange
	lookup := core.CommodityLookup{Commodity: core.Commodity{Description: "Yellow Bars", Quantity: 100, Owner: "Trader1"}}

	// act
	result, err := plusten.Decide(lookup, plusten.BuildCommand("GOLD"))

	// assert
	require.NoError(t, err)
	assert.True(t, result.HasCommodityToPut())
	assert.Equal(t, int64(110), result.Commodity.Quantity)
	assert.Equal(t, "Yellow Bars", result.Commodity.Description, "other fields are kept")
	assert.Equal(t, "New Quantity:  110", result.Message)
}

func Test_Decide_NegativeQuantityIsNotRejected(t *testing.T) {
	result, err := plusten.Decide(core.CommodityLookup{Commodity: core.Commodity{Quantity: -15}}, plusten.BuildCommand("DEBT"))

	require.NoError(t, err)
	assert.Equal(t, int64(-5), result.Commodity.Quantity)
}

func Test_Decide_Absent(t *testing.T) {
	result, err := plusten.Decide(core.CommodityLookup{Absent: true}, plusten.BuildCommand("KORNE"))

	require.NoError(t, err)
	assert.False(t, result.HasCommodityToPut())
	assert.Equal(t, core.OutcomeRecordAbsent, result.Outcome)
	assert.Equal(t, "No Commodity with that Key: KORNE", result.Message)
}

func Test_Decide_OtherKind(t *testing.T) {
	result, err := plusten.Decide(core.CommodityLookup{OtherKind: true}, plusten.BuildCommand("Trader1"))

	require.NoError(t, err)
	assert.False(t, result.HasCommodityToPut())
	assert.Equal(t, core.OutcomeTypeMismatch, result.Outcome)
	assert.Equal(t, "Key exists, but Not a Commodity: Trader1", result.Message)
}

func Test_Decide_QuantityOverflow_IsRejected(t *testing.T) {
	// arrange
	lookup := core.CommodityLookup{Commodity: core.Commodity{Quantity: math.MaxInt64 - 5}}

	// act
	result, err := plusten.Decide(lookup, plusten.BuildCommand("GOLD"))

	// assert
	assert.ErrorIs(t, err, core.ErrQuantityOverflow)
	assert.False(t, result.HasCommodityToPut())
}

func Test_Decide_LargestQuantityThatFits(t *testing.T) {
	result, err := plusten.Decide(core.CommodityLookup{Commodity: core.Commodity{Quantity: math.MaxInt64 - 10}}, plusten.BuildCommand("GOLD"))

	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), result.Commodity.Quantity)
}

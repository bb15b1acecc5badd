package deletecommodity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/commodity-ledger-go/trading/core"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/features/command/deletecommodity"
)

func Test_Decide_Commodity(t *testing.T) {
	result := deletecommodity.Decide(core.CommodityLookup{Commodity: core.Commodity{Quantity: 1}}, deletecommodity.BuildCommand("GOLD"))

	assert.True(t, result.HasKeyToDelete())
	assert.Equal(t, "Commodity deleted: GOLD", result.Message)
}

func Test_Decide_OtherKind(t *testing.T) {
	result := deletecommodity.Decide(core.CommodityLookup{OtherKind: true}, deletecommodity.BuildCommand("TRADER3"))

	assert.False(t, result.HasKeyToDelete())
	assert.Equal(t, core.OutcomeTypeMismatch, result.Outcome)
	assert.Equal(t, "Key exists, but Not a Commodity - NOT deleted: TRADER3", result.Message)
}

func Test_Decide_Absent(t *testing.T) {
	result := deletecommodity.Decide(core.CommodityLookup{Absent: true}, deletecommodity.BuildCommand("GOLD"))

	assert.False(t, result.HasKeyToDelete())
	assert.Equal(t, "No Commodity with that Key: GOLD", result.Message)
}

package plusten

import "github.com/AntonStoeckl/commodity-ledger-go/trading/core"

// Decide implements the business logic of raising a commodity's quantity.
// This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: a commodity stored under Key
//	WHEN: PlusTen is received
//	THEN: the commodity is written back with quantity + 10
//	ABSENT: "No Commodity with that Key: <key>", nothing written
//	OTHER KIND: "Key exists, but Not a Commodity: <key>", nothing written
//	OVERFLOW: core.ErrQuantityOverflow, nothing written
func Decide(lookup core.CommodityLookup, command Command) (core.DecisionResult, error) {
	if lookup.Absent {
		return core.RecordAbsentDecision(command.Key), nil
	}

	if lookup.OtherKind {
		return core.TypeMismatchDecision(core.NotACommodity(command.Key)), nil
	}

	raised, err := lookup.Commodity.PlusTen()
	if err != nil {
		return core.DecisionResult{}, err
	}

	return core.PutDecision(raised, core.NewQuantity(raised.Quantity)), nil
}

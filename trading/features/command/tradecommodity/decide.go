package tradecommodity

import "github.com/AntonStoeckl/commodity-ledger-go/trading/core"

// Decide implements the business logic of trading a commodity.
//
// Business Rules:
//
//	GIVEN: a commodity stored under Key
//	WHEN: Trade is received
//	THEN: the commodity is written back with owner = NewOwner
//	ABSENT: "No Commodity with that Key: <key>", nothing written
//	OTHER KIND: "Key exists, but Not a Commodity: <key>", nothing written
func Decide(lookup core.CommodityLookup, command Command) core.DecisionResult {
	if lookup.Absent {
		return core.RecordAbsentDecision(command.Key)
	}

	if lookup.OtherKind {
		return core.TypeMismatchDecision(core.NotACommodity(command.Key))
	}

	traded := lookup.Commodity.TradedTo(command.NewOwner)

	return core.PutDecision(traded, core.NewOwner(traded.Owner))
}

package deletecommodity

import "github.com/AntonStoeckl/commodity-ledger-go/trading/core"

// Decide implements the business logic of deleting a commodity.
//
// Business Rules:
//
//	GIVEN: a commodity stored under Key
//	WHEN: DeleteCommodity is received
//	THEN: Key is deleted
//	ABSENT: "No Commodity with that Key: <key>", nothing deleted
//	OTHER KIND: "Key exists, but Not a Commodity - NOT deleted: <key>", nothing deleted
func Decide(lookup core.CommodityLookup, command Command) core.DecisionResult {
	if lookup.Absent {
		return core.RecordAbsentDecision(command.Key)
	}

	if lookup.OtherKind {
		return core.TypeMismatchDecision(core.NotACommodityNotDeleted(command.Key))
	}

	return core.DeleteDecision(core.CommodityDeleted(command.Key))
}

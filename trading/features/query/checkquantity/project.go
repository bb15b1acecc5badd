package checkquantity

import "github.com/AntonStoeckl/commodity-ledger-go/trading/core"

// Project answers the query from the classified current value of the key.
func Project(lookup core.CommodityLookup, query Query) core.DecisionResult {
	if lookup.Absent {
		return core.RecordAbsentDecision(query.Key)
	}

	if lookup.OtherKind {
		return core.TypeMismatchDecision(core.NotACommodity(query.Key))
	}

	return core.ReadOnlyDecision(core.CheckedQuantity(lookup.Commodity.Quantity))
}

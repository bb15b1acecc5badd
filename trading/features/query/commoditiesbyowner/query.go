package commoditiesbyowner

import (
	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/core"
)

const (
	queryType = "CommodityByOwner"
)

// Query represents the intent to find the commodities with a given owner.
type Query struct {
	Owner string
}

// BuildQuery creates a new Query with the provided owner.
func BuildQuery(owner string) Query {
	return Query{Owner: owner}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

// BuildSelector creates the selector docType = "commodity" AND owner = owner.
// The value is matched literally, whatever characters it contains.
func BuildSelector(owner string) ledger.Selector {
	return ledger.BuildSelector().
		MatchingDocType(core.DocTypeCommodity).
		AndAllFieldsOf(ledger.F("owner", owner)).
		Finalize()
}

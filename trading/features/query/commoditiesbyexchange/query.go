package commoditiesbyexchange

import (
	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/core"
)

const (
	queryType = "CommodityByExchange"
)

// Query represents the intent to find the commodities with a given mainExchange.
type Query struct {
	MainExchange string
}

// BuildQuery creates a new Query with the provided exchange.
func BuildQuery(exchange string) Query {
	return Query{MainExchange: exchange}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

// BuildSelector creates the selector docType = "commodity" AND mainExchange = exchange.
// The value is matched literally, whatever characters it contains.
func BuildSelector(exchange string) ledger.Selector {
	return ledger.BuildSelector().
		MatchingDocType(core.DocTypeCommodity).
		AndAllFieldsOf(ledger.F("mainExchange", exchange)).
		Finalize()
}

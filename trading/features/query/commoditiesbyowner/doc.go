// Package commoditiesbyowner implements the Commodity By Owner query use case.
//
// It drains a rich query for the current commodities whose owner equals the requested value.
// Deleted commodities and traders never match. No matches yield an empty list.
package commoditiesbyowner

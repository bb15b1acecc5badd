// Package commoditiesbyexchange implements the Commodity By Exchange query use case:
// the current commodities traded mainly on one exchange, in key order where the engine provides it.
package commoditiesbyexchange

// Package createtrader implements the Create Trader use case: an unconditional write of the trader under its key.
package createtrader

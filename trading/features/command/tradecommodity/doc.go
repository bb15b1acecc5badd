// Package tradecommodity implements the Trade use case: the owner of a commodity is replaced.
//
// It follows the same Read-Decode-Decide-Write pattern as plusten. The new owner is not checked
// against the stored traders.
package tradecommodity

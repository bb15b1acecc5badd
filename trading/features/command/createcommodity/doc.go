// Package createcommodity implements the Create Commodity use case.
//
// The commodity is written unconditionally under its key, overwriting whatever the key held.
// The stored document is the canonical encoding, so it always carries docType "commodity".
package createcommodity

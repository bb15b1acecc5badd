// Package ledger defines the access port to a versioned key-value ledger and the shared
// building blocks all engines and handlers depend on.
//
// A Ledger keeps every historical version of a key. Writes are blind (Put, Delete),
// reads return the latest live value (Get), and two lazy streams expose the rest:
//
//   - HistoryOf yields all versions of one key in chronological order, including tombstones.
//   - Query yields the current values whose JSON document matches a structured Selector.
//
// Both streams are Sequences: scoped resources that must be closed exactly once.
// Drain is the one place in this module that pulls a Sequence to completion, decodes the
// payloads, skips tombstones and releases the Sequence on every exit path.
//
// Selectors are built structurally and serialized with a JSON encoder:
//
//	selector := ledger.BuildSelector().
//		MatchingDocType("commodity").
//		AndField("owner", "Trader1").
//		Finalize()
//
// Engines live in sub-packages: memengine (in-process), leveldbengine (embedded),
// postgresengine (PostgreSQL) and fabricengine (Hyperledger Fabric chaincode stub).
package ledger

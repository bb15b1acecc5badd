// Package spies provides recording test doubles for the ledger observability interfaces
// (slog handler, contextual logger, metrics, tracing) and for result sequences.
package spies

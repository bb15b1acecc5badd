// Package shell holds what every transaction handler of the commodity trading ledger shares:
// the handler contracts, the typed HandlerResult, and the observability helpers used by the
// observable wrappers.
//
// This package implements the "imperative shell" around the functional core in trading/core.
// Handlers read bytes through the ledger port, decode them with core, let a pure Decide function
// choose what to write, and write it back.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell

// Package core contains the records of the commodity trading ledger and the pure decisions made on them.
//
// Two record kinds share one flat keyspace and are told apart by the "docType" field of their
// JSON document: Commodity ("commodity") and Trader ("trader"). Record is the closed union of both.
//
// Nothing in here touches a ledger. Handlers read bytes through the ledger port, decode them with
// this package, ask a Decide function what to do, and write the result back.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core

// Package commodityhistory implements the History For Commodity query use case.
//
// Every version the ledger kept for a key is decoded, oldest first. Deletions leave tombstones
// in the history; they are skipped, so versions written before a delete and after a re-create
// both appear. Any record kind is returned, not only commodities.
package commodityhistory

// Package adapters provide database adapter implementations for the PostgreSQL ledger engine.
//
// pgxpool.Pool, sql.DB and sqlx.DB are all supported through the common DBAdapter interface.
// Statements are executed with bind arguments; reads honor the ledger consistency level
// carried by the context when a replica is configured.
package adapters

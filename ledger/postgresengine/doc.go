// Package postgresengine provides a PostgreSQL implementation of ledger.Ledger.
//
// Every write appends a row to a single table, so the table is the full version history:
//
//	sequence_number BIGSERIAL PRIMARY KEY
//	key             TEXT
//	payload         BYTEA
//	document        JSONB NULL    (payload when it is a JSON object, used for rich queries)
//	is_delete       BOOLEAN
//	tx_id           UUID
//	written_at      TIMESTAMPTZ
//
// Get reads the newest row of a key, HistoryOf reads all rows of a key in sequence order,
// and Query picks the newest row per key (DISTINCT ON) and filters live rows with JSONB containment.
//
// Three database adapters are supported:
//   - pgx/v5 connection pools (with an optional read replica)
//   - database/sql, e.g. with the lib/pq driver
//   - sqlx
//
// Reads go to the replica only when the context was marked with ledger.WithEventualConsistency.
// Call EnsureSchema once to create the table and its index.
package postgresengine

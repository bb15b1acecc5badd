// Package config loads the tradeledger configuration and opens the database connections it names.
//
// Values are layered: built-in defaults, then an optional tradeledger.yaml (explicit --config path,
// the user config directory, the working directory), then TRADELEDGER_* environment variables
// (dots become underscores), then command line flags.
//
// The PostgreSQL helpers create pgxpool, database/sql and sqlx connections with pre-configured
// pool settings, one per adapter the postgres engine supports.
package config

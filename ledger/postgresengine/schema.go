package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
)

const schemaTemplate = `
CREATE TABLE IF NOT EXISTS %[1]s (
    sequence_number BIGSERIAL PRIMARY KEY,
    key             TEXT        NOT NULL,
    payload         BYTEA       NULL,
    document        JSONB       NULL,
    is_delete       BOOLEAN     NOT NULL DEFAULT FALSE,
    tx_id           UUID        NOT NULL,
    written_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS %[2]s ON %[1]s (key, sequence_number);
CREATE INDEX IF NOT EXISTS %[3]s ON %[1]s USING GIN (document jsonb_path_ops);
`

// SchemaSQL returns the DDL for the configured table. Identifiers are quoted.
func (l *Ledger) SchemaSQL() string {
	return fmt.Sprintf(
		schemaTemplate,
		pgx.Identifier{l.tableName}.Sanitize(),
		pgx.Identifier{l.tableName + "_key_seq_idx"}.Sanitize(),
		pgx.Identifier{l.tableName + "_document_idx"}.Sanitize(),
	)
}

// EnsureSchema creates the ledger table and its indexes if they do not exist yet.
func (l *Ledger) EnsureSchema(ctx context.Context) error {
	ddl := l.SchemaSQL()

	start := time.Now()
	_, err := l.db.Exec(ctx, ddl)
	l.logQueryWithDuration(ctx, ddl, operationEnsureSchema, time.Since(start))

	if err != nil {
		l.logError(ctx, logMsgDBExecFailed, err, logAttrTable, l.tableName)
		return errors.Join(ledger.ErrStoreUnavailable, err)
	}

	l.logOperation(ctx, logMsgSchemaEnsured, logAttrTable, l.tableName)

	return nil
}

package postgresengine

import (
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import

	"github.com/google/uuid"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
)

const (
	colSequenceNumber = "sequence_number"
	colKey            = "key"
	colPayload        = "payload"
	colDocument       = "document"
	colIsDelete       = "is_delete"
	colTxID           = "tx_id"
	colWrittenAt      = "written_at"
	dialectPostgres   = "postgres"
	aliasLatest       = "latest"
	castText          = "TEXT"
	exprContainment   = "? @> ?::jsonb"
)

type (
	sqlQueryString = string
	sqlArgs        = []any
)

func (l *Ledger) dialect() goqu.DialectWrapper {
	return goqu.Dialect(dialectPostgres)
}

// buildGetQuery selects the newest version of one key.
func (l *Ledger) buildGetQuery(key string) (sqlQueryString, sqlArgs, error) {
	return l.dialect().
		From(l.tableName).
		Prepared(true).
		Select(colPayload, colIsDelete).
		Where(goqu.C(colKey).Eq(key)).
		Order(goqu.C(colSequenceNumber).Desc()).
		Limit(1).
		ToSQL()
}

// buildHistoryQuery selects every version of one key in write order.
func (l *Ledger) buildHistoryQuery(key string) (sqlQueryString, sqlArgs, error) {
	return l.dialect().
		From(l.tableName).
		Prepared(true).
		Select(goqu.Cast(goqu.C(colTxID), castText), colWrittenAt, colPayload, colIsDelete).
		Where(goqu.C(colKey).Eq(key)).
		Order(goqu.C(colSequenceNumber).Asc()).
		ToSQL()
}

// buildSelectorQuery picks the newest version per key, drops tombstones,
// and keeps the rows whose document contains the selector's conditions.
func (l *Ledger) buildSelectorQuery(selector ledger.Selector) (sqlQueryString, sqlArgs, error) {
	latest := l.dialect().
		From(l.tableName).
		Select(colKey, colPayload, colDocument, colIsDelete).
		Distinct(colKey).
		Order(goqu.C(colKey).Asc(), goqu.C(colSequenceNumber).Desc())

	stmt := l.dialect().
		From(latest.As(aliasLatest)).
		Prepared(true).
		Select(colKey, colPayload).
		Where(goqu.C(colIsDelete).IsFalse()).
		Order(goqu.C(colKey).Asc())

	if !selector.IsEmpty() {
		containment, err := selector.ContainmentJSON()
		if err != nil {
			return "", nil, errors.Join(ledger.ErrEncodingSelectorFailed, err)
		}

		stmt = stmt.Where(goqu.L(exprContainment, goqu.C(colDocument), string(containment)))
	}

	sqlQuery, args, err := stmt.ToSQL()
	if err != nil {
		return "", nil, errors.Join(ledger.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, args, nil
}

// buildInsertQuery appends one version. Tombstones carry neither payload nor document.
func (l *Ledger) buildInsertQuery(
	key string,
	value []byte,
	document any,
	isDelete bool,
	txID uuid.UUID,
) (sqlQueryString, sqlArgs, error) {

	var payload any
	if !isDelete {
		payload = value
	}

	return l.dialect().
		Insert(l.tableName).
		Prepared(true).
		Rows(goqu.Record{
			colKey:      key,
			colPayload:  payload,
			colDocument: document,
			colIsDelete: isDelete,
			colTxID:     txID.String(),
		}).
		ToSQL()
}

package postgresengine

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
	"github.com/AntonStoeckl/commodity-ledger-go/ledger/postgresengine/internal/adapters"
	"github.com/AntonStoeckl/commodity-ledger-go/testutil/spies"
)

/***** fakes *****/

type fakeRows struct {
	rows     [][]any
	index    int
	closed   bool
	scanErr  error
	closeErr error
}

func (r *fakeRows) Next() bool {
	if r.index >= len(r.rows) {
		return false
	}

	r.index++

	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}

	row := r.rows[r.index-1]
	for i, d := range dest {
		switch target := d.(type) {
		case *[]byte:
			if row[i] == nil {
				*target = nil
			} else {
				*target = row[i].([]byte)
			}
		case *bool:
			*target = row[i].(bool)
		case *string:
			*target = row[i].(string)
		case *time.Time:
			*target = row[i].(time.Time)
		}
	}

	return nil
}

func (r *fakeRows) Err() error { return nil }

func (r *fakeRows) Close() error {
	r.closed = true
	return r.closeErr
}

type fakeResult struct{}

func (fakeResult) RowsAffected() (int64, error) { return 1, nil }

type fakeDB struct {
	lastQuery string
	lastArgs  []any
	rows      *fakeRows
	queryErr  error
	execErr   error
}

func (f *fakeDB) Query(_ context.Context, query string, args ...any) (adapters.DBRows, error) {
	f.lastQuery, f.lastArgs = query, args
	if f.queryErr != nil {
		return nil, f.queryErr
	}

	if f.rows == nil {
		f.rows = &fakeRows{}
	}

	return f.rows, nil
}

func (f *fakeDB) Exec(_ context.Context, query string, args ...any) (adapters.DBResult, error) {
	f.lastQuery, f.lastArgs = query, args
	if f.execErr != nil {
		return nil, f.execErr
	}

	return fakeResult{}, nil
}

func newTestLedger(t *testing.T, db *fakeDB, options ...Option) *Ledger {
	t.Helper()

	l, err := newLedger(db, options...)
	require.NoError(t, err)

	return l
}

/***** query building *****/

func Test_BuildGetQuery(t *testing.T) {
	l := newTestLedger(t, &fakeDB{})

	sqlQuery, args, err := l.buildGetQuery("GOLD")

	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `SELECT "payload", "is_delete" FROM "ledger_entries" WHERE ("key" = $1)`)
	assert.Contains(t, sqlQuery, `ORDER BY "sequence_number" DESC LIMIT $2`)
	require.NotEmpty(t, args)
	assert.Equal(t, "GOLD", args[0])
}

func Test_BuildHistoryQuery(t *testing.T) {
	l := newTestLedger(t, &fakeDB{}, WithTableName("trades"))

	sqlQuery, args, err := l.buildHistoryQuery("CORN")

	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `CAST("tx_id" AS TEXT)`)
	assert.Contains(t, sqlQuery, `FROM "trades"`)
	assert.Contains(t, sqlQuery, `ORDER BY "sequence_number" ASC`)
	assert.Equal(t, []any{"CORN"}, args)
}

func Test_BuildSelectorQuery_PicksLatestLiveVersionPerKey(t *testing.T) {
	l := newTestLedger(t, &fakeDB{})
	selector := ledger.BuildSelector().
		MatchingDocType("commodity").
		AndAllFieldsOf(ledger.F("owner", "Trader1")).
		Finalize()

	sqlQuery, args, err := l.buildSelectorQuery(selector)

	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `SELECT DISTINCT ON ("key")`)
	assert.Contains(t, sqlQuery, `"is_delete" IS FALSE`)
	assert.Contains(t, sqlQuery, `"document" @> $`)
	require.NotEmpty(t, args)
	assert.JSONEq(t, `{"docType":"commodity","owner":"Trader1"}`, args[len(args)-1].(string))
}

func Test_BuildSelectorQuery_HostileValuesAreBoundNotInlined(t *testing.T) {
	l := newTestLedger(t, &fakeDB{})
	selector := ledger.BuildSelector().
		MatchingAllFieldsOf(ledger.F("owner", `x'); DROP TABLE ledger_entries; --`)).
		Finalize()

	sqlQuery, _, err := l.buildSelectorQuery(selector)

	require.NoError(t, err)
	assert.NotContains(t, sqlQuery, "DROP TABLE")
}

func Test_BuildSelectorQuery_EmptySelectorHasNoContainment(t *testing.T) {
	l := newTestLedger(t, &fakeDB{})

	sqlQuery, _, err := l.buildSelectorQuery(ledger.BuildSelector().MatchingAnyDocument())

	require.NoError(t, err)
	assert.NotContains(t, sqlQuery, "@>")
}

func Test_BuildInsertQuery_TombstoneCarriesNoPayload(t *testing.T) {
	l := newTestLedger(t, &fakeDB{})
	txID := uuid.MustParse("8f5a3c1e-0000-4000-8000-000000000001")

	sqlQuery, args, err := l.buildInsertQuery("GOLD", []byte(`{"a":1}`), nil, true, txID)

	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `INSERT INTO "ledger_entries"`)
	assert.NotContains(t, args, []byte(`{"a":1}`))
	assert.Contains(t, args, txID.String())
}

func Test_DocumentOf(t *testing.T) {
	assert.Equal(t, `{"docType":"trader"}`, documentOf([]byte(`{"docType":"trader"}`)))
	assert.Equal(t, ` {"a":1}`, documentOf([]byte(` {"a":1}`)))
	assert.Nil(t, documentOf([]byte(`[1,2]`)))
	assert.Nil(t, documentOf([]byte(`{broken`)))
	assert.Nil(t, documentOf(nil))
}

func Test_SchemaSQL_QuotesTableName(t *testing.T) {
	l := newTestLedger(t, &fakeDB{}, WithTableName(`odd"name`))

	ddl := l.SchemaSQL()

	assert.Contains(t, ddl, `CREATE TABLE IF NOT EXISTS "odd""name"`)
	assert.Contains(t, ddl, "USING GIN (document jsonb_path_ops)")
}

/***** operations against the fake adapter *****/

func Test_Get_TombstoneReadsAsAbsent(t *testing.T) {
	// arrange
	db := &fakeDB{rows: &fakeRows{rows: [][]any{{nil, true}}}}
	l := newTestLedger(t, db)

	// act
	value, err := l.Get(context.Background(), "GOLD")

	// assert
	require.NoError(t, err)
	assert.Nil(t, value)
	assert.True(t, db.rows.closed)
}

func Test_Get_ScanFailure(t *testing.T) {
	// arrange
	db := &fakeDB{rows: &fakeRows{rows: [][]any{{[]byte(`{}`), false}}, scanErr: errors.New("boom")}}
	l := newTestLedger(t, db)

	// act
	_, err := l.Get(context.Background(), "GOLD")

	// assert
	assert.ErrorIs(t, err, ledger.ErrScanningRowFailed)
}

func Test_Put_DatabaseFailure_IsObserved(t *testing.T) {
	// setup
	logger, logSpy := spies.NewSpyLogger()
	metricsSpy := spies.NewMetricsCollectorSpy(true)
	tracingSpy := spies.NewTracingCollectorSpy(true)

	// arrange
	db := &fakeDB{execErr: errors.New("connection refused")}
	l := newTestLedger(t, db, WithLogger(logger), WithMetrics(metricsSpy), WithTracing(tracingSpy))

	// act
	err := l.Put(context.Background(), "GOLD", []byte(`{"docType":"commodity"}`))

	// assert
	assert.ErrorIs(t, err, ledger.ErrStoreUnavailable)
	assert.True(t, logSpy.HasLogWithMessage(slog.LevelError, logMsgDBExecFailed).WithAttr(logAttrError, "connection refused").Assert())
	assert.True(t, metricsSpy.HasCounterRecordForMetric(metricDatabaseErrors).
		WithOperation(operationPut).
		WithLabel(spanAttrErrorType, errorTypeDatabaseExec).
		Assert())
	assert.True(t, metricsSpy.HasDurationRecordForMetric(metricOperationDuration).WithStatus(statusError).Assert())
	assert.True(t, tracingSpy.HasFinishedSpan(spanNamePrefix+operationPut, statusError))
}

func Test_Put_BindsDocumentForJSONObjects(t *testing.T) {
	// arrange
	db := &fakeDB{}
	l := newTestLedger(t, db, WithTxIDGenerator(func() uuid.UUID { return uuid.Nil }))

	// act
	err := l.Put(context.Background(), "Trader1", []byte(`{"docType":"trader"}`))

	// assert
	require.NoError(t, err)
	assert.Contains(t, db.lastArgs, `{"docType":"trader"}`)
	assert.Contains(t, db.lastArgs, uuid.Nil.String())
}

func Test_Query_StreamsRowsAndCloses(t *testing.T) {
	// setup
	metricsSpy := spies.NewMetricsCollectorSpy(true)

	// arrange
	db := &fakeDB{rows: &fakeRows{rows: [][]any{
		{"COAL", []byte(`{"owner":"Trader2"}`)},
		{"GOLD", []byte(`{"owner":"Trader1"}`)},
	}}}
	l := newTestLedger(t, db, WithMetrics(metricsSpy))
	ctx := context.Background()

	// act
	seq, err := l.Query(ctx, ledger.BuildSelector().MatchingDocType("commodity").Finalize())
	require.NoError(t, err)
	payloads, drainErr := ledger.Drain(ctx, seq, func(payload []byte) (string, error) { return string(payload), nil })

	// assert
	require.NoError(t, drainErr)
	assert.Equal(t, []string{`{"owner":"Trader2"}`, `{"owner":"Trader1"}`}, payloads)
	assert.True(t, db.rows.closed)
	assert.ErrorIs(t, seq.Close(), ledger.ErrSequenceClosed)
	assert.True(t, metricsSpy.HasDurationRecordForMetric(metricOperationDuration).
		WithOperation(operationQuery).
		WithStatus(statusSuccess).
		Assert())
}

func Test_HistoryOf_QueryFailure(t *testing.T) {
	db := &fakeDB{queryErr: errors.New("timeout")}
	l := newTestLedger(t, db)

	_, err := l.HistoryOf(context.Background(), "GOLD")

	assert.ErrorIs(t, err, ledger.ErrStoreUnavailable)
}

func Test_Options(t *testing.T) {
	_, err := newLedger(&fakeDB{}, WithTableName(""))

	assert.ErrorIs(t, err, ledger.ErrEmptyTableNameSupplied)
}

package postgresengine

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
)

const (
	operationGet          = "get"
	operationPut          = "put"
	operationDelete       = "delete"
	operationHistory      = "history"
	operationQuery        = "query"
	operationEnsureSchema = "ensure_schema"

	metricOperationDuration = "ledger_operation_duration_seconds"
	metricDatabaseErrors    = "ledger_database_errors_total"

	spanNamePrefix    = "ledger."
	spanAttrOperation = "operation"
	spanAttrKey       = "key"
	spanAttrTable     = "table"
	spanAttrFound     = "found"
	spanAttrErrorType = "error_type"
	spanAttrDuration  = "duration_ms"

	labelStatus = "status"

	statusSuccess = "success"
	statusError   = "error"

	errorTypeBuildQuery    = "build_query"
	errorTypeDatabaseQuery = "database_query"
	errorTypeDatabaseExec  = "database_exec"
	errorTypeRowScan       = "row_scan"
)

// observation tracks one ledger operation across tracing and metrics.
type observation struct {
	ctx       context.Context
	l         *Ledger
	operation string
	span      ledger.SpanContext
	start     time.Time
}

// observe starts a span for the operation if tracing is configured and starts the duration clock.
func (l *Ledger) observe(ctx context.Context, operation, key string) (context.Context, *observation) {
	obs := &observation{l: l, operation: operation, start: time.Now()}

	if l.tracingCollector != nil {
		attrs := map[string]string{
			spanAttrOperation: operation,
			spanAttrTable:     l.tableName,
		}

		if key != "" {
			attrs[spanAttrKey] = key
		}

		ctx, obs.span = l.tracingCollector.StartSpan(ctx, spanNamePrefix+operation, attrs)
	}

	obs.ctx = ctx

	return ctx, obs
}

// succeed finishes the observation successfully. extra holds additional span attribute key/value pairs.
func (o *observation) succeed(extra ...string) {
	duration := time.Since(o.start)
	o.l.recordDuration(o.ctx, o.operation, statusSuccess, duration)

	attrs := map[string]string{spanAttrDuration: formatMilliseconds(duration)}
	for i := 0; i+1 < len(extra); i += 2 {
		attrs[extra[i]] = extra[i+1]
	}

	o.finishSpan(statusSuccess, attrs)
}

// fail finishes the observation with an error classification.
func (o *observation) fail(errorType string, err error) {
	duration := time.Since(o.start)
	o.l.recordDuration(o.ctx, o.operation, statusError, duration)
	o.l.recordError(o.ctx, o.operation, errorType)

	if errorType == errorTypeBuildQuery {
		o.l.logError(o.ctx, logMsgBuildQueryFailed, err)
	}

	o.finishSpan(statusError, map[string]string{
		spanAttrErrorType: errorType,
		spanAttrDuration:  formatMilliseconds(duration),
	})
}

func (o *observation) finishSpan(status string, attrs map[string]string) {
	if o.l.tracingCollector == nil || o.span == nil {
		return
	}

	o.l.tracingCollector.FinishSpan(o.span, status, attrs)
}

// recordDuration records the operation duration, with context if the collector supports it.
func (l *Ledger) recordDuration(ctx context.Context, operation, status string, duration time.Duration) {
	if l.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		labelStatus:       status,
	}

	if contextualCollector, ok := l.metricsCollector.(ledger.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricOperationDuration, duration, labels)
		return
	}

	l.metricsCollector.RecordDuration(metricOperationDuration, duration, labels)
}

// recordError counts a failed operation, with context if the collector supports it.
func (l *Ledger) recordError(ctx context.Context, operation, errorType string) {
	if l.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		labelStatus:       statusError,
		spanAttrErrorType: errorType,
	}

	if contextualCollector, ok := l.metricsCollector.(ledger.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricDatabaseErrors, labels)
		return
	}

	l.metricsCollector.IncrementCounter(metricDatabaseErrors, labels)
}

// logQueryWithDuration logs SQL statements with execution time at debug level.
func (l *Ledger) logQueryWithDuration(ctx context.Context, sqlQuery, action string, duration time.Duration) {
	args := []any{logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery}

	switch {
	case l.contextualLogger != nil:
		l.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, args...)
	case l.logger != nil:
		l.logger.Debug(logMsgSQLExecuted+action, args...)
	}
}

// logOperation logs operational information at info level.
func (l *Ledger) logOperation(ctx context.Context, action string, args ...any) {
	switch {
	case l.contextualLogger != nil:
		l.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	case l.logger != nil:
		l.logger.Info(logMsgOperation+action, args...)
	}
}

func (l *Ledger) logWarn(ctx context.Context, message string, args ...any) {
	switch {
	case l.contextualLogger != nil:
		l.contextualLogger.WarnContext(ctx, message, args...)
	case l.logger != nil:
		l.logger.Warn(message, args...)
	}
}

// logError logs error information at the error level.
func (l *Ledger) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	switch {
	case l.contextualLogger != nil:
		l.contextualLogger.ErrorContext(ctx, message, allArgs...)
	case l.logger != nil:
		l.logger.Error(message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func formatMilliseconds(d time.Duration) string {
	return strconv.FormatFloat(toMilliseconds(d), 'f', 2, 64)
}

func boolString(b bool) string {
	return strconv.FormatBool(b)
}

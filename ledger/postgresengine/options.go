package postgresengine

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
)

// Option defines a functional option for configuring a Ledger.
type Option func(*Ledger) error

// WithTableName sets the table name for the Ledger.
func WithTableName(tableName string) Option {
	return func(l *Ledger) error {
		if tableName == "" {
			return ledger.ErrEmptyTableNameSupplied
		}

		l.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Ledger.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: write and query summaries with durations (production-safe)
// Warn level: non-critical issues like cleanup failures
// Error level: failures that cause the operation to fail.
func WithLogger(logger ledger.Logger) Option {
	return func(l *Ledger) error {
		l.logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger, preferred over the plain logger when both are set.
func WithContextualLogger(logger ledger.ContextualLogger) Option {
	return func(l *Ledger) error {
		l.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Ledger.
func WithMetrics(collector ledger.MetricsCollector) Option {
	return func(l *Ledger) error {
		l.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Ledger.
func WithTracing(collector ledger.TracingCollector) Option {
	return func(l *Ledger) error {
		l.tracingCollector = collector
		return nil
	}
}

// WithTxIDGenerator sets the generator for transaction ids. Generated ids must be UUIDs.
func WithTxIDGenerator(next func() uuid.UUID) Option {
	return func(l *Ledger) error {
		l.txIDs = next
		return nil
	}
}

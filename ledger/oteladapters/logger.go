// Package oteladapters implements the ledger observability interfaces with OpenTelemetry.
//
// SlogBridgeLogger and OTelLogger satisfy ledger.ContextualLogger, MetricsCollector satisfies
// ledger.ContextualMetricsCollector and TracingCollector satisfies ledger.TracingCollector.
// All of them work against whatever providers the caller installed, including the global ones.
package oteladapters

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	otellog "go.opentelemetry.io/otel/log"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
)

// SlogBridgeLogger logs through the OpenTelemetry slog bridge, so records carry the trace and
// span ids of the context they are logged with.
type SlogBridgeLogger struct {
	logger *slog.Logger
}

// NewSlogBridgeLogger creates a logger on the global OpenTelemetry LoggerProvider.
func NewSlogBridgeLogger(name string) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: otelslog.NewLogger(name)}
}

// NewSlogBridgeLoggerWithProvider creates a logger on the given LoggerProvider.
func NewSlogBridgeLoggerWithProvider(name string, provider otellog.LoggerProvider) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: otelslog.NewLogger(name, otelslog.WithLoggerProvider(provider))}
}

// NewSlogBridgeLoggerWithHandler wraps a plain slog.Handler. No trace correlation is added.
func NewSlogBridgeLoggerWithHandler(handler slog.Handler) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: slog.New(handler)}
}

func (l *SlogBridgeLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, args...)
}

func (l *SlogBridgeLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, args...)
}

func (l *SlogBridgeLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, args...)
}

func (l *SlogBridgeLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, args...)
}

var _ ledger.ContextualLogger = (*SlogBridgeLogger)(nil)

// OTelLogger emits records with the OpenTelemetry logs API directly.
type OTelLogger struct {
	logger otellog.Logger
}

// NewOTelLogger wraps an OpenTelemetry logger.
func NewOTelLogger(logger otellog.Logger) *OTelLogger {
	return &OTelLogger{logger: logger}
}

func (l *OTelLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, otellog.SeverityDebug, msg, args)
}

func (l *OTelLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, otellog.SeverityInfo, msg, args)
}

func (l *OTelLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, otellog.SeverityWarn, msg, args)
}

func (l *OTelLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, otellog.SeverityError, msg, args)
}

// emit converts slog-style key/value args into record attributes. A dangling key is dropped.
func (l *OTelLogger) emit(ctx context.Context, severity otellog.Severity, msg string, args []any) {
	var record otellog.Record
	record.SetSeverity(severity)
	record.SetSeverityText(severity.String())
	record.SetBody(otellog.StringValue(msg))

	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}

		record.AddAttributes(otellog.String(key, stringValue(args[i+1])))
	}

	l.logger.Emit(ctx, record)
}

func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	return slog.AnyValue(v).String()
}

var _ ledger.ContextualLogger = (*OTelLogger)(nil)

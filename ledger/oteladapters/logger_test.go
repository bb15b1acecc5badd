package oteladapters_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger/oteladapters"
)

type emitted struct {
	ctx    context.Context
	record otellog.Record
}

// recordingLogger keeps every emitted record.
type recordingLogger struct {
	noop.Logger
	emitted []emitted
}

func (l *recordingLogger) Emit(ctx context.Context, record otellog.Record) {
	l.emitted = append(l.emitted, emitted{ctx: ctx, record: record})
}

func attributesOf(record otellog.Record) map[string]string {
	attrs := make(map[string]string)
	record.WalkAttributes(func(kv otellog.KeyValue) bool {
		attrs[kv.Key] = kv.Value.AsString()
		return true
	})

	return attrs
}

func Test_SlogBridgeLogger_WithHandler_WritesAllLevels(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(
		slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	ctx := context.Background()

	// act
	logger.DebugContext(ctx, "debug message", "key", "GOLD")
	logger.InfoContext(ctx, "info message")
	logger.WarnContext(ctx, "warn message")
	logger.ErrorContext(ctx, "error message")

	// assert
	output := buf.String()
	assert.Contains(t, output, `"msg":"debug message"`)
	assert.Contains(t, output, `"key":"GOLD"`)
	assert.Contains(t, output, `"level":"INFO"`)
	assert.Contains(t, output, `"level":"WARN"`)
	assert.Contains(t, output, `"level":"ERROR"`)
}

func Test_SlogBridgeLogger_OnGlobalProvider(t *testing.T) {
	logger := oteladapters.NewSlogBridgeLogger("tradeledger")

	assert.NotPanics(t, func() { logger.InfoContext(context.Background(), "ready") })
}

func Test_OTelLogger_EmitsSeverityBodyAndAttributes(t *testing.T) {
	// arrange
	recorder := &recordingLogger{}
	logger := oteladapters.NewOTelLogger(recorder)

	// act
	logger.WarnContext(context.Background(), "failed to release result sequence", "error", "boom", "attempt", 2, "dangling")

	// assert
	require.Len(t, recorder.emitted, 1)
	record := recorder.emitted[0].record
	assert.Equal(t, otellog.SeverityWarn, record.Severity())
	assert.Equal(t, "failed to release result sequence", record.Body().AsString())
	assert.Equal(t, map[string]string{"error": "boom", "attempt": "2"}, attributesOf(record))
}

func Test_OTelLogger_PassesSpanContextThrough(t *testing.T) {
	// arrange
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(tracetest.NewInMemoryExporter()))
	ctx, span := provider.Tracer("test").Start(context.Background(), "commandhandler.handle")
	defer span.End()

	recorder := &recordingLogger{}
	logger := oteladapters.NewOTelLogger(recorder)

	// act
	logger.InfoContext(ctx, "command handler operation: command completed")

	// assert
	require.Len(t, recorder.emitted, 1)
	emittedSpan := trace.SpanContextFromContext(recorder.emitted[0].ctx)
	assert.True(t, emittedSpan.IsValid())
	assert.Equal(t, span.SpanContext().TraceID(), emittedSpan.TraceID())
}

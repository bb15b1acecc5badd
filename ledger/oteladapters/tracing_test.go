package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger/oteladapters"
	"github.com/AntonStoeckl/commodity-ledger-go/testutil/spies"
)

func newTracing(t *testing.T) (*oteladapters.TracingCollector, *tracetest.InMemoryExporter) {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	return oteladapters.NewTracingCollector(provider.Tracer("test")), exporter
}

func attributeValue(span tracetest.SpanStub, key string) (string, bool) {
	for _, kv := range span.Attributes {
		if kv.Key == attribute.Key(key) {
			return kv.Value.AsString(), true
		}
	}

	return "", false
}

func Test_TracingCollector_StartAndFinish(t *testing.T) {
	// arrange
	collector, exporter := newTracing(t)

	// act
	_, span := collector.StartSpan(context.Background(), "ledger.get", map[string]string{"operation": "get", "key": "GOLD"})
	span.AddAttribute("found", "true")
	collector.FinishSpan(span, "success", map[string]string{"duration_ms": "1.25"})

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "ledger.get", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)

	for key, want := range map[string]string{"operation": "get", "key": "GOLD", "found": "true", "duration_ms": "1.25"} {
		got, ok := attributeValue(spans[0], key)
		assert.True(t, ok, "attribute %s missing", key)
		assert.Equal(t, want, got)
	}
}

func Test_TracingCollector_StatusMapping(t *testing.T) {
	cases := []struct {
		status string
		code   codes.Code
	}{
		{"success", codes.Ok},
		{"error", codes.Error},
		{"canceled", codes.Error},
		{"timeout", codes.Error},
		{"partial", codes.Unset},
	}

	for _, tc := range cases {
		t.Run(tc.status, func(t *testing.T) {
			collector, exporter := newTracing(t)

			_, span := collector.StartSpan(context.Background(), "commandhandler.handle", nil)
			collector.FinishSpan(span, tc.status, nil)

			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, tc.code, spans[0].Status.Code)
		})
	}
}

func Test_TracingCollector_UnknownStatusBecomesAttribute(t *testing.T) {
	collector, exporter := newTracing(t)

	_, span := collector.StartSpan(context.Background(), "queryhandler.handle", nil)
	collector.FinishSpan(span, "partial", nil)

	got, ok := attributeValue(exporter.GetSpans()[0], "status")
	assert.True(t, ok)
	assert.Equal(t, "partial", got)
}

func Test_TracingCollector_StartSpan_NestsUnderParent(t *testing.T) {
	// arrange
	collector, exporter := newTracing(t)

	// act
	ctx, parent := collector.StartSpan(context.Background(), "commandhandler.handle", nil)
	_, child := collector.StartSpan(ctx, "ledger.put", nil)
	collector.FinishSpan(child, "success", nil)
	collector.FinishSpan(parent, "success", nil)

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
}

func Test_TracingCollector_FinishSpan_IgnoresForeignSpans(t *testing.T) {
	collector, exporter := newTracing(t)

	collector.FinishSpan(&spies.SpySpanContext{}, "success", nil)

	assert.Empty(t, exporter.GetSpans())
}

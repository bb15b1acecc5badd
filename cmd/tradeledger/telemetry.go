package main

import (
	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/commodity-ledger-go/internal/config"
	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
	"github.com/AntonStoeckl/commodity-ledger-go/ledger/oteladapters"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/contract"
)

// observability holds the OpenTelemetry adapters; all nil when telemetry is disabled.
type observability struct {
	contextualLogger ledger.ContextualLogger
	metricsCollector ledger.MetricsCollector
	tracingCollector ledger.TracingCollector
}

// newObservability builds the adapters on the global OpenTelemetry providers.
// Without an SDK installed by the host process these are no-ops.
func newObservability(cfg config.TelemetryConfig) observability {
	if !cfg.Enabled {
		return observability{}
	}

	return observability{
		contextualLogger: oteladapters.NewSlogBridgeLogger(cfg.ServiceName),
		metricsCollector: oteladapters.NewMetricsCollector(otel.Meter(cfg.ServiceName)),
		tracingCollector: oteladapters.NewTracingCollector(otel.Tracer(cfg.ServiceName)),
	}
}

func (o observability) contractOptions(logger ledger.Logger) []contract.Option {
	opts := []contract.Option{contract.WithLogger(logger)}

	if o.contextualLogger != nil {
		opts = append(opts, contract.WithContextualLogger(o.contextualLogger))
	}
	if o.metricsCollector != nil {
		opts = append(opts, contract.WithMetrics(o.metricsCollector))
	}
	if o.tracingCollector != nil {
		opts = append(opts, contract.WithTracing(o.tracingCollector))
	}

	return opts
}

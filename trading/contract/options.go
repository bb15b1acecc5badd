package contract

import "github.com/AntonStoeckl/commodity-ledger-go/trading/shell"

// Option configures a Contract.
type Option func(*Contract) error

// WithLogger sets the logger used by the handler wrappers and the result drains.
func WithLogger(logger shell.Logger) Option {
	return func(c *Contract) error {
		c.logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger. It takes precedence over WithLogger.
func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(c *Contract) error {
		c.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the collector receiving handler duration and call metrics.
func WithMetrics(collector shell.MetricsCollector) Option {
	return func(c *Contract) error {
		c.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the collector receiving one span per handled transaction.
func WithTracing(collector shell.TracingCollector) Option {
	return func(c *Contract) error {
		c.tracingCollector = collector
		return nil
	}
}

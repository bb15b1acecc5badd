// Package observable provides wrapper components for instrumenting command and query handlers
// with metrics, tracing and logging while keeping business logic pure.
//
// The wrappers are applied externally at wiring time, not hidden inside handler constructors:
//
//	coreHandler := plusten.NewCommandHandler(l)
//
//	handler, err := observable.NewCommandWrapper[plusten.Command](
//		coreHandler,
//		observable.WithCommandMetrics[plusten.Command](metricsCollector),
//		observable.WithCommandTracing[plusten.Command](tracingCollector),
//		observable.WithCommandContextualLogging[plusten.Command](logger),
//	)
//
//	result, err := handler.Handle(ctx, plusten.BuildCommand("GOLD"))
//
// Informational misses ("No Commodity with that Key", "Key exists, but Not a Commodity") are
// recorded with their own status, not as errors.
package observable

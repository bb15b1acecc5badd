package main

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/contract"
)

type invokeFunc func(ctx context.Context, operation string, args []string) ([]byte, error)

// observedLedger is an opened engine plus the contract options matching the configuration.
type observedLedger struct {
	ledger       ledger.Ledger
	contractOpts []contract.Option
}

// withObservedLedger opens the configured engine for the duration of fn.
func (a *app) withObservedLedger(ctx context.Context, fn func(ctx context.Context, ol observedLedger) error) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}

	obs := newObservability(a.cfg.Telemetry)

	l, release, err := openLedger(ctx, a.cfg, a.logger, obs)
	if err != nil {
		return err
	}

	defer func() {
		if releaseErr := release(); releaseErr != nil {
			err = errors.Join(err, releaseErr)
		}
	}()

	return fn(ctx, observedLedger{ledger: l, contractOpts: obs.contractOptions(a.logger)})
}

// withContract hands fn an invoker bound to the configured engine.
func (a *app) withContract(ctx context.Context, fn func(ctx context.Context, run invokeFunc) error) error {
	return a.withObservedLedger(ctx, func(ctx context.Context, ol observedLedger) error {
		return fn(ctx, func(ctx context.Context, operation string, args []string) ([]byte, error) {
			return contract.Invoke(ctx, ol.ledger, operation, args, ol.contractOpts...)
		})
	})
}

package commoditiesbyexchange

import (
	"context"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/core"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/shell"
)

// Ledger defines the interface needed by the QueryHandler for ledger operations.
type Ledger interface {
	Query(ctx context.Context, selector ledger.Selector) (ledger.Sequence, error)
}

type QueryHandler struct {
	ledger           Ledger
	logger           shell.Logger
	contextualLogger shell.ContextualLogger
}

// Option configures a QueryHandler.
type Option func(*QueryHandler)

func WithLogger(logger shell.Logger) Option {
	return func(h *QueryHandler) {
		h.logger = logger
	}
}

func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(h *QueryHandler) {
		h.contextualLogger = logger
	}
}

func NewQueryHandler(l Ledger, opts ...Option) QueryHandler {
	h := QueryHandler{ledger: l}

	for _, opt := range opts {
		opt(&h)
	}

	return h
}

// Handle executes Query -> Drain.
func (h QueryHandler) Handle(ctx context.Context, query Query) ([]core.Commodity, error) {
	ctx = ledger.WithDefaultEventualConsistency(ctx)

	seq, err := h.ledger.Query(ctx, BuildSelector(query.MainExchange))
	if err != nil {
		return nil, err
	}

	return ledger.Drain(ctx, seq, core.DecodeCommodity, shell.DrainOptions(h.logger, h.contextualLogger)...)
}

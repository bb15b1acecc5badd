package commoditiesbyowner

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

// QueryHandler orchestrates the query processing workflow: Query -> Drain.
type QueryHandler struct {
	ledger           Ledger
	logger           shell.Logger
	contextualLogger shell.ContextualLogger
}

// Option configures a QueryHandler.
type Option func(*QueryHandler)

// WithLogger sets the logger receiving sequence release failures.
func WithLogger(logger shell.Logger) Option {
	return func(h *QueryHandler) {
		h.logger = logger
	}
}

// WithContextualLogger sets the context-aware logger receiving sequence release failures.
func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(h *QueryHandler) {
		h.contextualLogger = logger
	}
}

// NewQueryHandler creates a new QueryHandler with the provided Ledger dependency and options.
func NewQueryHandler(l Ledger, opts ...Option) QueryHandler {
	h := QueryHandler{ledger: l}

	for _, opt := range opts {
		opt(&h)
	}

	return h
}

// Handle returns the current commodities owned by query.Owner.
// A result document that does not decode as a commodity fails the whole query.
func (h QueryHandler) Handle(ctx context.Context, query Query) ([]core.Commodity, error) {
	ctx = ledger.WithDefaultEventualConsistency(ctx)

	seq, err := h.ledger.Query(ctx, BuildSelector(query.Owner))
	if err != nil {
		return nil, err
	}

	return ledger.Drain(ctx, seq, core.DecodeCommodity, shell.DrainOptions(h.logger, h.contextualLogger)...)
}

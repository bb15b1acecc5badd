package commodityhistory

import (
	"context"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/core"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/shell"
)

// Ledger defines the interface needed by the QueryHandler for ledger operations.
type Ledger interface {
	HistoryOf(ctx context.Context, key string) (ledger.Sequence, error)
}

// QueryHandler drains the history of a key.
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

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(l Ledger, opts ...Option) QueryHandler {
	h := QueryHandler{ledger: l}

	for _, opt := range opts {
		opt(&h)
	}

	return h
}

// Handle returns the records stored under the key, oldest first. A key without history yields an empty list.
// Unless the caller chose a consistency level, the read may be served by a replica.
func (h QueryHandler) Handle(ctx context.Context, query Query) ([]core.Record, error) {
	ctx = ledger.WithDefaultEventualConsistency(ctx)

	seq, err := h.ledger.HistoryOf(ctx, query.Key)
	if err != nil {
		return nil, err
	}

	return ledger.Drain(ctx, seq, decodeVersion, shell.DrainOptions(h.logger, h.contextualLogger)...)
}

func decodeVersion(payload []byte) (core.Record, error) {
	record, _, err := core.Decode(payload)

	return record, err
}

package checkquantity

import (
	"context"

	"github.com/AntonStoeckl/commodity-ledger-go/trading/core"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/shell"
)

// Ledger defines the interface needed by the QueryHandler for ledger operations.
type Ledger interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// QueryHandler orchestrates Read -> Decode -> Project.
type QueryHandler struct {
	ledger Ledger
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(l Ledger) QueryHandler {
	return QueryHandler{ledger: l}
}

// Handle reads the key with the consistency level carried by ctx.
func (h QueryHandler) Handle(ctx context.Context, query Query) (shell.HandlerResult, error) {
	payload, err := h.ledger.Get(ctx, query.Key)
	if err != nil {
		return shell.HandlerResult{}, err
	}

	lookup, err := core.LookupCommodity(payload)
	if err != nil {
		return shell.HandlerResult{}, err
	}

	return shell.ResultFromDecision(Project(lookup, query)), nil
}

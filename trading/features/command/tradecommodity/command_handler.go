package tradecommodity

import (
	"context"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/core"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/shell"
)

// Ledger defines the interface needed by the CommandHandler for ledger operations.
type Ledger interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// CommandHandler orchestrates Read -> Decode -> Decide -> Write.
type CommandHandler struct {
	ledger Ledger
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(l Ledger) CommandHandler {
	return CommandHandler{ledger: l}
}

// Handle executes the complete command processing workflow.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	ctx = ledger.WithStrongConsistency(ctx)

	payload, err := h.ledger.Get(ctx, command.Key)
	if err != nil {
		return shell.HandlerResult{}, err
	}

	lookup, err := core.LookupCommodity(payload)
	if err != nil {
		return shell.HandlerResult{}, err
	}

	result := Decide(lookup, command)

	if !result.HasCommodityToPut() {
		return shell.ResultFromDecision(result), nil
	}

	encoded, err := core.Encode(result.Commodity)
	if err != nil {
		return shell.HandlerResult{}, err
	}

	if err := h.ledger.Put(ctx, command.Key, encoded); err != nil {
		return shell.HandlerResult{}, err
	}

	return shell.ResultFromDecision(result), nil
}

package deletecommodity

import (
	"context"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/core"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/shell"
)

// Ledger defines the interface needed by the CommandHandler for ledger operations.
type Ledger interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// CommandHandler orchestrates Read -> Classify -> Decide -> Delete.
// Only the discriminant of the stored document is parsed, so a commodity with malformed fields can still be deleted.
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

	lookup, err := core.ClassifyCommodity(payload)
	if err != nil {
		return shell.HandlerResult{}, err
	}

	result := Decide(lookup, command)

	if !result.HasKeyToDelete() {
		return shell.ResultFromDecision(result), nil
	}

	if err := h.ledger.Delete(ctx, command.Key); err != nil {
		return shell.HandlerResult{}, err
	}

	return shell.ResultFromDecision(result), nil
}

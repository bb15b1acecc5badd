package createtrader

import (
	"context"

	"github.com/AntonStoeckl/commodity-ledger-go/trading/core"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/shell"
)

// Ledger defines the interface needed by the CommandHandler for ledger operations.
type Ledger interface {
	Put(ctx context.Context, key string, value []byte) error
}

type CommandHandler struct {
	ledger Ledger
}

func NewCommandHandler(l Ledger) CommandHandler {
	return CommandHandler{ledger: l}
}

// Handle executes the command: Encode -> Write.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	encoded, err := core.Encode(command.Trader)
	if err != nil {
		return shell.HandlerResult{}, err
	}

	if err := h.ledger.Put(ctx, command.Key, encoded); err != nil {
		return shell.HandlerResult{}, err
	}

	return shell.NewAppliedResult(core.TraderCreated(command.Key)), nil
}

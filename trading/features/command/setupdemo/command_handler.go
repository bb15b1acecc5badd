package setupdemo

import (
	"context"

	"github.com/AntonStoeckl/commodity-ledger-go/trading/core"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/shell"
)

// Ledger defines the interface needed by the CommandHandler for ledger operations.
type Ledger interface {
	Put(ctx context.Context, key string, value []byte) error
}

// CommandHandler writes core.DemoSeed in order. A failed write stops the seeding;
// the records written before it stay.
type CommandHandler struct {
	ledger Ledger
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(l Ledger) CommandHandler {
	return CommandHandler{ledger: l}
}

// Handle executes the command. The result message is empty.
func (h CommandHandler) Handle(ctx context.Context, _ Command) (shell.HandlerResult, error) {
	for _, seed := range core.DemoSeed() {
		encoded, err := core.Encode(seed.Record)
		if err != nil {
			return shell.HandlerResult{}, err
		}

		if err := h.ledger.Put(ctx, seed.Key, encoded); err != nil {
			return shell.HandlerResult{}, err
		}
	}

	return shell.NewAppliedResult(""), nil
}

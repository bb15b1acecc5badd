package createtrader

import "github.com/AntonStoeckl/commodity-ledger-go/trading/core"

const (
	commandType = "CreateTrader"
)

// Command represents the intent to store a trader under a key.
type Command struct {
	Key    string
	Trader core.Trader
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(key string, trader core.Trader) Command {
	return Command{
		Key:    key,
		Trader: trader,
	}
}

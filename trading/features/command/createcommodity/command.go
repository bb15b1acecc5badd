package createcommodity

import "github.com/AntonStoeckl/commodity-ledger-go/trading/core"

const (
	commandType = "CreateCommodity"
)

// Command represents the intent to store a commodity under a key.
type Command struct {
	Key       string
	Commodity core.Commodity
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(key string, commodity core.Commodity) Command {
	return Command{
		Key:       key,
		Commodity: commodity,
	}
}

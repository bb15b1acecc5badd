package tradecommodity

const (
	commandType = "Trade"
)

// Command represents the intent to hand a commodity over to a new owner.
type Command struct {
	Key      string
	NewOwner string
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(key string, newOwner string) Command {
	return Command{
		Key:      key,
		NewOwner: newOwner,
	}
}

package plusten

const (
	commandType = "PlusTen"
)

// Command represents the intent to add ten to the quantity of a commodity.
type Command struct {
	Key string
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command for the commodity stored under key.
func BuildCommand(key string) Command {
	return Command{Key: key}
}

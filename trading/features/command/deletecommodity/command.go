package deletecommodity

const (
	commandType = "DeleteCommodity"
)

// Command represents the intent to delete the commodity stored under a key.
type Command struct {
	Key string
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command for key.
func BuildCommand(key string) Command {
	return Command{Key: key}
}

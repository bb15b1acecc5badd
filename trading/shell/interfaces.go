package shell

import "context"

// Command represents the contract for all command types of the trading ledger.
// The CommandType method enables polymorphic handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// Query represents the contract for all query types of the trading ledger.
type Query interface {
	QueryType() string
}

// CoreCommandHandler defines the contract for components that process commands with pure business logic.
// Handlers orchestrate the complete command workflow: Read -> Decode -> Decide -> Write.
// Implementations focus on business logic only and are wrapped with observability decorators.
type CoreCommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (HandlerResult, error)
}

// CoreQueryHandler defines the contract for components that answer queries without writing.
// The generic parameters Q and R ensure type safety between queries and their results.
type CoreQueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

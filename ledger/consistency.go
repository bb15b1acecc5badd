package ledger

import "context"

// ConsistencyLevel defines which copy of the data a read may be served from.
type ConsistencyLevel int

const (
	// StrongConsistency requires reads from the primary store.
	// Read-modify-write handlers (plusTen, trade, deleteCommodity) must see the latest version.
	StrongConsistency ConsistencyLevel = iota

	// EventualConsistency allows engines with a read replica to serve the read from it.
	// Suitable for history and rich-query lookups that tolerate slightly stale data.
	EventualConsistency
)

type contextKey string

// ConsistencyLevelKey is the context key used to store consistency level preferences.
const ConsistencyLevelKey contextKey = "ledger.consistency_level"

// WithStrongConsistency returns a context that signals Ledger reads must use the primary store.
//
// Example usage:
//
//	ctx = ledger.WithStrongConsistency(ctx)
//	current, err := l.Get(ctx, key)
func WithStrongConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, StrongConsistency)
}

// WithEventualConsistency returns a context that signals Ledger reads may be served by a replica.
//
// Example usage:
//
//	ctx = ledger.WithEventualConsistency(ctx)
//	seq, err := l.Query(ctx, selector)
func WithEventualConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, EventualConsistency)
}

// GetConsistencyLevel extracts the consistency level from the context.
// Without an explicit level it returns StrongConsistency.
func GetConsistencyLevel(ctx context.Context) ConsistencyLevel {
	if level, ok := ctx.Value(ConsistencyLevelKey).(ConsistencyLevel); ok {
		return level
	}

	return StrongConsistency
}

// HasConsistencyLevel reports whether the context carries an explicit consistency level.
func HasConsistencyLevel(ctx context.Context) bool {
	_, ok := ctx.Value(ConsistencyLevelKey).(ConsistencyLevel)

	return ok
}

// WithDefaultEventualConsistency marks the context for eventual consistency
// unless the caller already chose a level.
func WithDefaultEventualConsistency(ctx context.Context) context.Context {
	if HasConsistencyLevel(ctx) {
		return ctx
	}

	return WithEventualConsistency(ctx)
}

// String provides a string representation of ConsistencyLevel for logging.
func (c ConsistencyLevel) String() string {
	switch c {
	case StrongConsistency:
		return "strong"
	case EventualConsistency:
		return "eventual"
	default:
		return "unknown"
	}
}

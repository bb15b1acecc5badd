package shell

import "github.com/AntonStoeckl/commodity-ledger-go/trading/core"

const (
	// OutcomeApplied means the handler did what was asked (it may still have written nothing).
	OutcomeApplied = core.OutcomeApplied

	// OutcomeRecordAbsent means the key held no record. It is a business outcome, not an error.
	OutcomeRecordAbsent = core.OutcomeRecordAbsent

	// OutcomeTypeMismatch means the key held a record of another kind, which was left unmodified.
	OutcomeTypeMismatch = core.OutcomeTypeMismatch
)

// HandlerResult represents the outcome of a command handler execution.
// Message is the human-readable answer returned over the operation surface,
// Outcome classifies it so Go callers need not match on the text.
type HandlerResult struct {
	Outcome string
	Message string
}

// NewAppliedResult creates a HandlerResult for handlers that always succeed.
func NewAppliedResult(message string) HandlerResult {
	return HandlerResult{Outcome: OutcomeApplied, Message: message}
}

// ResultFromDecision converts a core decision into the handler's answer.
func ResultFromDecision(decision core.DecisionResult) HandlerResult {
	return HandlerResult{Outcome: decision.Outcome, Message: decision.Message}
}

// IsSoftFailure reports whether the handler answered with an informational miss.
func (r HandlerResult) IsSoftFailure() bool {
	return r.Outcome == OutcomeRecordAbsent || r.Outcome == OutcomeTypeMismatch
}

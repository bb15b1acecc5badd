package core

const (
	OutcomeApplied      = "applied"
	OutcomeRecordAbsent = "record_absent"
	OutcomeTypeMismatch = "type_mismatch"
)

type effect int

const (
	effectNone effect = iota
	effectPut
	effectDelete
)

// DecisionResult tells a handler what to write, if anything, and what to answer.
//
// It should only be constructed with the provided factory functions.
type DecisionResult struct {
	Outcome   string
	Message   string
	Commodity Commodity // the commodity to write, for put decisions
	effect    effect
}

// PutDecision writes commodity back under the handled key.
func PutDecision(commodity Commodity, message string) DecisionResult {
	return DecisionResult{Outcome: OutcomeApplied, Message: message, Commodity: commodity, effect: effectPut}
}

// DeleteDecision deletes the handled key.
func DeleteDecision(message string) DecisionResult {
	return DecisionResult{Outcome: OutcomeApplied, Message: message, effect: effectDelete}
}

// ReadOnlyDecision answers without writing.
func ReadOnlyDecision(message string) DecisionResult {
	return DecisionResult{Outcome: OutcomeApplied, Message: message}
}

// RecordAbsentDecision answers that the key holds nothing.
func RecordAbsentDecision(key string) DecisionResult {
	return DecisionResult{Outcome: OutcomeRecordAbsent, Message: NoCommodity(key)}
}

// TypeMismatchDecision answers that the key holds something other than a commodity.
func TypeMismatchDecision(message string) DecisionResult {
	return DecisionResult{Outcome: OutcomeTypeMismatch, Message: message}
}

func (r DecisionResult) HasCommodityToPut() bool {
	return r.effect == effectPut
}

func (r DecisionResult) HasKeyToDelete() bool {
	return r.effect == effectDelete
}

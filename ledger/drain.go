package ledger

import (
	"context"
	"errors"
)

const (
	logMsgSequenceReleaseFailed = "failed to release result sequence"
	logMsgSequenceDrained       = "result sequence drained"
	logAttrError                = "error"
	logAttrEntryCount           = "entry_count"
	logAttrSkippedCount         = "skipped_count"
)

// DecodeFunc turns one non-empty payload into a typed result.
type DecodeFunc[R any] func(payload []byte) (R, error)

// DrainOption configures a single Drain call.
type DrainOption func(*drainer)

type drainer struct {
	logger           Logger
	contextualLogger ContextualLogger
}

// WithDrainLogger sets the logger that receives release failures and drain summaries.
func WithDrainLogger(logger Logger) DrainOption {
	return func(d *drainer) {
		d.logger = logger
	}
}

// WithDrainContextualLogger sets a context-aware logger; it takes precedence over WithDrainLogger.
func WithDrainContextualLogger(logger ContextualLogger) DrainOption {
	return func(d *drainer) {
		d.contextualLogger = logger
	}
}

// Drain pulls seq to completion and returns the decoded payloads in sequence order.
//
//   - Entries with an empty payload (tombstones) are skipped, never decoded.
//   - The first decode failure fails the whole drain; partial results are discarded.
//   - A failure reported by the sequence itself is joined with ErrSequenceFailed.
//   - seq is closed exactly once on every path. A close failure is logged at warn level and swallowed.
//
// An empty sequence yields an empty, non-nil slice.
func Drain[R any](ctx context.Context, seq Sequence, decode DecodeFunc[R], opts ...DrainOption) ([]R, error) {
	d := drainer{}
	for _, opt := range opts {
		opt(&d)
	}

	defer d.release(ctx, seq)

	results := make([]R, 0)
	skipped := 0

	for seq.Next() {
		entry := seq.Entry()
		if entry.IsTombstone() {
			skipped++
			continue
		}

		result, decodeErr := decode(entry.Value)
		if decodeErr != nil {
			return nil, errors.Join(ErrDecodingEntryFailed, decodeErr)
		}

		results = append(results, result)
	}

	if iterErr := seq.Err(); iterErr != nil {
		return nil, errors.Join(ErrSequenceFailed, iterErr)
	}

	d.debug(ctx, logMsgSequenceDrained, logAttrEntryCount, len(results), logAttrSkippedCount, skipped)

	return results, nil
}

func (d drainer) release(ctx context.Context, seq Sequence) {
	if closeErr := seq.Close(); closeErr != nil {
		d.warn(ctx, logMsgSequenceReleaseFailed, logAttrError, closeErr.Error())
	}
}

func (d drainer) warn(ctx context.Context, msg string, args ...any) {
	if d.contextualLogger != nil {
		d.contextualLogger.WarnContext(ctx, msg, args...)
	} else if d.logger != nil {
		d.logger.Warn(msg, args...)
	}
}

func (d drainer) debug(ctx context.Context, msg string, args ...any) {
	if d.contextualLogger != nil {
		d.contextualLogger.DebugContext(ctx, msg, args...)
	} else if d.logger != nil {
		d.logger.Debug(msg, args...)
	}
}

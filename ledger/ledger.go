package ledger

import (
	"context"
	"time"
)

// Ledger is the access port every transaction handler works against.
//
// Implementations keep all historical versions of a key. Get returns nil (and no error)
// for a key that was never written or whose latest version is a deletion.
// Failures of the underlying store are reported joined with ErrStoreUnavailable.
type Ledger interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	HistoryOf(ctx context.Context, key string) (Sequence, error)
	Query(ctx context.Context, selector Selector) (Sequence, error)
}

// Entry is one element of a Sequence.
//
// History entries carry IsDelete, TxID and Timestamp; a tombstone has IsDelete set and an empty Value.
// Query entries carry Key and Value only.
type Entry struct {
	Key       string
	Value     []byte
	IsDelete  bool
	TxID      string
	Timestamp time.Time
}

// IsTombstone reports whether the entry carries no payload.
func (e Entry) IsTombstone() bool {
	return len(e.Value) == 0
}

// Sequence is a lazy, pull-based stream of entries that holds store resources until closed.
//
// The usage contract follows database/sql.Rows:
//
//	for seq.Next() {
//		entry := seq.Entry()
//	}
//	err := seq.Err()
//	closeErr := seq.Close()
//
// Close must be called exactly once on every path; use Drain instead of looping by hand.
type Sequence interface {
	Next() bool
	Entry() Entry
	Err() error
	Close() error
}

// Package memengine provides an in-process, versioned Ledger.
//
// It keeps every version of every key in memory and is meant for tests, demos and the CLI's
// default engine. Sequences are snapshots taken when HistoryOf or Query is called.
package memengine

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
)

type version struct {
	value     []byte
	isDelete  bool
	txID      string
	timestamp time.Time
}

// Ledger is an in-memory ledger.Ledger safe for concurrent use.
type Ledger struct {
	mu       sync.RWMutex
	versions map[string][]version
	clock    func() time.Time
	txIDs    func() string
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock sets the clock used to timestamp versions.
func WithClock(clock func() time.Time) Option {
	return func(l *Ledger) {
		l.clock = clock
	}
}

// WithTxIDGenerator sets the generator for transaction ids attached to versions.
func WithTxIDGenerator(next func() string) Option {
	return func(l *Ledger) {
		l.txIDs = next
	}
}

// NewLedger creates an empty in-memory ledger.
func NewLedger(opts ...Option) *Ledger {
	l := &Ledger{
		versions: make(map[string][]version),
		clock:    func() time.Time { return time.Now().UTC() },
		txIDs:    uuid.NewString,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

func (l *Ledger) Get(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ledger.ErrEmptyKey
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	current, ok := l.latest(key)
	if !ok || current.isDelete {
		return nil, nil
	}

	return clone(current.value), nil
}

func (l *Ledger) Put(_ context.Context, key string, value []byte) error {
	if key == "" {
		return ledger.ErrEmptyKey
	}

	l.append(key, version{value: clone(value)})

	return nil
}

// Delete appends a tombstone. Deleting an absent key still records the tombstone, as Fabric does.
func (l *Ledger) Delete(_ context.Context, key string) error {
	if key == "" {
		return ledger.ErrEmptyKey
	}

	l.append(key, version{isDelete: true})

	return nil
}

func (l *Ledger) HistoryOf(_ context.Context, key string) (ledger.Sequence, error) {
	if key == "" {
		return nil, ledger.ErrEmptyKey
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	versions := l.versions[key]
	entries := make([]ledger.Entry, 0, len(versions))
	for _, v := range versions {
		entries = append(entries, ledger.Entry{
			Key:       key,
			Value:     clone(v.value),
			IsDelete:  v.isDelete,
			TxID:      v.txID,
			Timestamp: v.timestamp,
		})
	}

	return ledger.NewSliceSequence(entries), nil
}

// Query returns the current value of every live key whose document matches the selector, ordered by key.
func (l *Ledger) Query(_ context.Context, selector ledger.Selector) (ledger.Sequence, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	keys := make([]string, 0, len(l.versions))
	for key := range l.versions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	entries := make([]ledger.Entry, 0)
	for _, key := range keys {
		current, _ := l.latest(key)
		if current.isDelete || !selector.Matches(current.value) {
			continue
		}

		entries = append(entries, ledger.Entry{Key: key, Value: clone(current.value)})
	}

	return ledger.NewSliceSequence(entries), nil
}

func (l *Ledger) append(key string, v version) {
	l.mu.Lock()
	defer l.mu.Unlock()

	v.txID = l.txIDs()
	v.timestamp = l.clock()
	l.versions[key] = append(l.versions[key], v)
}

func (l *Ledger) latest(key string) (version, bool) {
	versions := l.versions[key]
	if len(versions) == 0 {
		return version{}, false
	}

	return versions[len(versions)-1], true
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}

	c := make([]byte, len(b))
	copy(c, b)

	return c
}

var _ ledger.Ledger = (*Ledger)(nil)

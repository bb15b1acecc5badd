// Package leveldbengine provides an embedded, versioned Ledger on top of goleveldb.
//
// Keys are laid out in prefix pools inside one LevelDB database:
//
//	S<key>                          current value of a live key
//	H<len(key):u32><key><seq:u64>   one history record per write or delete
//	N                               last assigned sequence number
//
// Each write updates the pools atomically with a leveldb.Batch.
package leveldbengine

import (
	"context"
	"encoding/binary"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
)

const (
	prefixCurrent byte = 'S'
	prefixHistory byte = 'H'
	prefixCounter byte = 'N'

	logMsgOperation = "leveldb ledger operation: "
	logAttrKey      = "key"
	logAttrSequence = "sequence"
	logAttrError    = "error"
	logActionPut    = "put"
	logActionDelete = "delete"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrNilDB = errors.New("leveldb handle is nil")
var ErrCorruptHistoryRecord = errors.New("corrupt history record")

// historyRecord is the stored form of one version.
type historyRecord struct {
	TxID      string `json:"txId"`
	Timestamp int64  `json:"ts"`
	IsDelete  bool   `json:"isDelete"`
	Value     []byte `json:"value,omitempty"`
}

// Ledger is a ledger.Ledger backed by a goleveldb database.
type Ledger struct {
	db       *leveldb.DB
	ownsDB   bool
	mu       sync.Mutex
	sequence uint64
	clock    func() time.Time
	txIDs    func() string
	logger   ledger.Logger
}

// Option configures a Ledger.
type Option func(*Ledger) error

// WithLogger sets the logger receiving debug-level operation messages.
func WithLogger(logger ledger.Logger) Option {
	return func(l *Ledger) error {
		l.logger = logger
		return nil
	}
}

// WithClock sets the clock used to timestamp versions.
func WithClock(clock func() time.Time) Option {
	return func(l *Ledger) error {
		l.clock = clock
		return nil
	}
}

// WithTxIDGenerator sets the generator for transaction ids attached to versions.
func WithTxIDGenerator(next func() string) Option {
	return func(l *Ledger) error {
		l.txIDs = next
		return nil
	}
}

// Open opens (or creates) a LevelDB database at path. Close releases it.
func Open(path string, opts ...Option) (*Ledger, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.Join(ledger.ErrStoreUnavailable, err)
	}

	l, err := NewLedger(db, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	l.ownsDB = true

	return l, nil
}

// NewLedger creates a Ledger on an already opened database, e.g. one on storage.NewMemStorage().
// The caller keeps ownership of db.
func NewLedger(db *leveldb.DB, opts ...Option) (*Ledger, error) {
	if db == nil {
		return nil, ErrNilDB
	}

	l := &Ledger{
		db:    db,
		clock: func() time.Time { return time.Now().UTC() },
		txIDs: uuid.NewString,
	}

	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}

	counter, err := db.Get([]byte{prefixCounter}, nil)
	switch {
	case errors.Is(err, leveldb.ErrNotFound):
		l.sequence = 0
	case err != nil:
		return nil, errors.Join(ledger.ErrStoreUnavailable, err)
	case len(counter) == 8:
		l.sequence = binary.BigEndian.Uint64(counter)
	default:
		return nil, ErrCorruptHistoryRecord
	}

	return l, nil
}

// Close closes the database if this Ledger opened it.
func (l *Ledger) Close() error {
	if !l.ownsDB {
		return nil
	}

	return l.db.Close()
}

func (l *Ledger) Get(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ledger.ErrEmptyKey
	}

	value, err := l.db.Get(currentKey(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, errors.Join(ledger.ErrStoreUnavailable, err)
	}

	return value, nil
}

func (l *Ledger) Put(_ context.Context, key string, value []byte) error {
	if key == "" {
		return ledger.ErrEmptyKey
	}

	return l.write(key, logActionPut, historyRecord{Value: value}, func(batch *leveldb.Batch) {
		batch.Put(currentKey(key), value)
	})
}

func (l *Ledger) Delete(_ context.Context, key string) error {
	if key == "" {
		return ledger.ErrEmptyKey
	}

	return l.write(key, logActionDelete, historyRecord{IsDelete: true}, func(batch *leveldb.Batch) {
		batch.Delete(currentKey(key))
	})
}

func (l *Ledger) write(key, action string, record historyRecord, current func(batch *leveldb.Batch)) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := l.sequence + 1
	record.TxID = l.txIDs()
	record.Timestamp = l.clock().UnixNano()

	encoded, err := json.Marshal(record)
	if err != nil {
		return err
	}

	counter := make([]byte, 8)
	binary.BigEndian.PutUint64(counter, next)

	batch := new(leveldb.Batch)
	current(batch)
	batch.Put(historyKey(key, next), encoded)
	batch.Put([]byte{prefixCounter}, counter)

	if err := l.db.Write(batch, nil); err != nil {
		l.logError(action, key, err)
		return errors.Join(ledger.ErrStoreUnavailable, err)
	}

	l.sequence = next

	if l.logger != nil {
		l.logger.Debug(logMsgOperation+action, logAttrKey, key, logAttrSequence, next)
	}

	return nil
}

func (l *Ledger) HistoryOf(_ context.Context, key string) (ledger.Sequence, error) {
	if key == "" {
		return nil, ledger.ErrEmptyKey
	}

	iter := l.db.NewIterator(util.BytesPrefix(historyPrefix(key)), nil)

	return &historySequence{iter: iter, key: key}, nil
}

// Query scans the current-value pool in key order and yields the documents matching selector.
func (l *Ledger) Query(_ context.Context, selector ledger.Selector) (ledger.Sequence, error) {
	iter := l.db.NewIterator(util.BytesPrefix([]byte{prefixCurrent}), nil)

	return &querySequence{iter: iter, selector: selector}, nil
}

func (l *Ledger) logError(action, key string, err error) {
	if l.logger != nil {
		l.logger.Error(logMsgOperation+action, logAttrKey, key, logAttrError, err.Error())
	}
}

/***** keys *****/

func currentKey(key string) []byte {
	return append([]byte{prefixCurrent}, key...)
}

func historyPrefix(key string) []byte {
	prefix := make([]byte, 5, 5+len(key))
	prefix[0] = prefixHistory
	binary.BigEndian.PutUint32(prefix[1:], uint32(len(key))) //nolint:gosec
	return append(prefix, key...)
}

func historyKey(key string, sequence uint64) []byte {
	seq := make([]byte, 8)
	binary.BigEndian.PutUint64(seq, sequence)
	return append(historyPrefix(key), seq...)
}

/***** sequences *****/

type historySequence struct {
	iter    iterator.Iterator
	key     string
	current ledger.Entry
	err     error
	closed  bool
}

func (s *historySequence) Next() bool {
	if s.closed || s.err != nil || !s.iter.Next() {
		return false
	}

	var record historyRecord
	if err := json.Unmarshal(s.iter.Value(), &record); err != nil {
		s.err = errors.Join(ErrCorruptHistoryRecord, err)
		return false
	}

	s.current = ledger.Entry{
		Key:       s.key,
		Value:     record.Value,
		IsDelete:  record.IsDelete,
		TxID:      record.TxID,
		Timestamp: time.Unix(0, record.Timestamp).UTC(),
	}

	return true
}

func (s *historySequence) Entry() ledger.Entry {
	return s.current
}

func (s *historySequence) Err() error {
	if s.err != nil {
		return s.err
	}

	if err := s.iter.Error(); err != nil {
		return errors.Join(ledger.ErrStoreUnavailable, err)
	}

	return nil
}

func (s *historySequence) Close() error {
	if s.closed {
		return ledger.ErrSequenceClosed
	}

	s.closed = true
	s.iter.Release()

	return nil
}

type querySequence struct {
	iter     iterator.Iterator
	selector ledger.Selector
	current  ledger.Entry
	closed   bool
}

func (s *querySequence) Next() bool {
	if s.closed {
		return false
	}

	for s.iter.Next() {
		value := s.iter.Value()
		if !s.selector.Matches(value) {
			continue
		}

		// the iterator reuses its buffers
		key := string(s.iter.Key()[1:])
		s.current = ledger.Entry{Key: key, Value: append([]byte(nil), value...)}

		return true
	}

	return false
}

func (s *querySequence) Entry() ledger.Entry {
	return s.current
}

func (s *querySequence) Err() error {
	if err := s.iter.Error(); err != nil {
		return errors.Join(ledger.ErrStoreUnavailable, err)
	}

	return nil
}

func (s *querySequence) Close() error {
	if s.closed {
		return ledger.ErrSequenceClosed
	}

	s.closed = true
	s.iter.Release()

	return nil
}

var _ ledger.Ledger = (*Ledger)(nil)

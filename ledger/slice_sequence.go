package ledger

// SliceSequence is a Sequence over entries that are already materialized in memory.
// Engines that snapshot their results up front (memengine) and test doubles use it.
type SliceSequence struct {
	entries []Entry
	pos     int
	closed  bool
}

// NewSliceSequence creates a SliceSequence positioned before the first entry.
func NewSliceSequence(entries []Entry) *SliceSequence {
	return &SliceSequence{entries: entries, pos: -1}
}

func (s *SliceSequence) Next() bool {
	if s.closed || s.pos+1 >= len(s.entries) {
		return false
	}

	s.pos++

	return true
}

func (s *SliceSequence) Entry() Entry {
	if s.pos < 0 || s.pos >= len(s.entries) {
		return Entry{}
	}

	return s.entries[s.pos]
}

func (s *SliceSequence) Err() error {
	return nil
}

// Close releases the sequence. A second Close reports ErrSequenceClosed.
func (s *SliceSequence) Close() error {
	if s.closed {
		return ErrSequenceClosed
	}

	s.closed = true

	return nil
}

// Closed reports whether Close was called.
func (s *SliceSequence) Closed() bool {
	return s.closed
}

package hashid

import "sync/atomic"

// Sequence is an in-process auto-increment allocator backing AutoField
// outside the database. Safe for concurrent use.
type Sequence struct {
	state atomic.Int64
}

// NewSequence returns a sequence whose first allocation is start.
// Panics if start is not positive.
func NewSequence(start int64) *Sequence {
	if start < 1 {
		panic("hashid: sequence start must be positive")
	}
	s := &Sequence{}
	s.state.Store(start - 1)
	return s
}

// Next allocates and returns the next id.
func (s *Sequence) Next() int64 {
	return s.state.Add(1)
}

// Current returns the last allocated id, or start-1 before any allocation.
func (s *Sequence) Current() int64 {
	return s.state.Load()
}

// Advance moves the sequence past id if it is ahead of the current state,
// so in-process allocation can resume above rows already in the database.
func (s *Sequence) Advance(id int64) {
	for {
		cur := s.state.Load()
		if id <= cur {
			return
		}
		if s.state.CompareAndSwap(cur, id) {
			return
		}
	}
}

package revision

import "sync/atomic"

// Clock is the running sequence counter for one tree object.
//
// Each committed mutation takes Current() as its base sequence and advances
// the clock by exactly one, so no two mutations share a base sequence.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations), though
// the editor's single-writer design means only one goroutine typically calls
// Next().
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock starting at a specific sequence number.
// Used after replay to resume from the last persisted target sequence.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and advances the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without advancing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}

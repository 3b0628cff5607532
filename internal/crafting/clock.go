package crafting

import "sync/atomic"

// Clock is a monotonic logical clock for ordering phase events.
//
// Event order comes from Clock.Next, never from wall-clock time, so a
// replayed craft produces the same sequence numbers.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations).
// A machine shares one clock across the contexts of successive crafts.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock starting at a specific sequence number.
// Used to resume a journal after its last recorded event.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}

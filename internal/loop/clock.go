package loop

import (
	"sync"
	"sync/atomic"
	"time"
)

// SeqClock is a monotonic logical clock for scheduling order.
//
// Every macrotask, microtask and timer is stamped with a strictly
// increasing seq number from this clock. This ensures:
// - Deterministic ordering (no wall-clock race conditions)
// - Same-deadline timers fire in scheduling order
// - Transcripts are reproducible across runs
//
// Thread-safety: SeqClock is safe for concurrent use (atomic operations).
// The loop's single-writer design means only one goroutine typically
// calls Next().
type SeqClock struct {
	seq atomic.Int64
}

// NewSeqClock creates a new clock starting at 0.
func NewSeqClock() *SeqClock {
	return &SeqClock{}
}

// Next returns the next sequence number and increments the clock.
// Calls are linearizable - each call returns a unique, increasing value.
func (c *SeqClock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *SeqClock) Current() int64 {
	return c.seq.Load()
}

// Clock tells the loop what time it is. Timers compare their deadlines
// against Clock.Now.
//
// Durations are measured from an arbitrary zero point (loop start), not
// from the Unix epoch. Only differences matter.
type Clock interface {
	Now() time.Duration
}

// advancer is implemented by clocks whose time the loop may move forward
// when it goes idle. VirtualClock implements it; WallClock does not.
type advancer interface {
	advanceTo(d time.Duration)
}

// VirtualClock is a manually advanced clock.
//
// Under a VirtualClock the loop never sleeps: when both task queues are
// empty it jumps time straight to the next timer deadline. A demo that
// spans "seconds" of timer activity completes in microseconds and produces
// the same transcript every run.
//
// Thread-safety: safe for concurrent reads; only the loop advances it.
type VirtualClock struct {
	mu  sync.Mutex
	now time.Duration
}

// NewVirtualClock creates a virtual clock at time zero.
func NewVirtualClock() *VirtualClock {
	return &VirtualClock{}
}

// Now returns the current virtual time.
func (c *VirtualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// advanceTo moves virtual time forward. Time never moves backwards.
func (c *VirtualClock) advanceTo(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d > c.now {
		c.now = d
	}
}

// WallClock reports real elapsed time since it was created.
//
// Under a WallClock the loop sleeps until the next timer deadline, so
// debounce and throttle demos play out at human speed (loopkit run
// --real-time).
type WallClock struct {
	start time.Time
}

// NewWallClock creates a wall clock anchored at the current instant.
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

// Now returns the real time elapsed since the clock was created.
func (c *WallClock) Now() time.Duration {
	return time.Since(c.start)
}

package loop

import (
	"container/heap"
	"time"
)

// TimerHandle identifies a scheduled timer. Pass it to ClearTimer to
// cancel. The zero value is never a valid handle.
type TimerHandle int64

// timer is a scheduled one-shot or repeating callback.
type timer struct {
	handle   TimerHandle
	deadline time.Duration // fires when clock.Now() >= deadline
	seq      int64         // scheduling order, breaks deadline ties
	interval time.Duration // 0 for one-shot; otherwise reschedule period
	fn       func()
	cleared  bool
	index    int // heap index, maintained by timerHeap
}

// timerHeap orders timers by (deadline, seq). Same-deadline timers fire
// in the order they were scheduled.
type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].deadline != h[j].deadline {
		return h[i].deadline < h[j].deadline
	}
	return h[i].seq < h[j].seq
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// SetTimeout schedules fn to run once after delay. Negative delays are
// clamped to zero; a zero-delay timer still waits for the current task and
// all microtasks to finish before firing.
//
// Must be called on the loop goroutine (from a task, microtask or timer
// callback). Use Post to enter the loop from outside.
func (l *Loop) SetTimeout(fn func(), delay time.Duration) TimerHandle {
	return l.schedule(fn, delay, 0)
}

// SetInterval schedules fn to run every interval until cleared.
// Intervals below the minimum tick of 1ns are rejected by clamping to 1ns
// so a zero interval cannot starve the loop within a single deadline.
//
// Must be called on the loop goroutine.
func (l *Loop) SetInterval(fn func(), interval time.Duration) TimerHandle {
	if interval <= 0 {
		interval = 1
	}
	return l.schedule(fn, interval, interval)
}

// ClearTimer cancels a timer created by SetTimeout or SetInterval.
// Clearing an already-fired or unknown handle is a no-op.
//
// Must be called on the loop goroutine.
func (l *Loop) ClearTimer(h TimerHandle) {
	t, ok := l.timersByID[h]
	if !ok {
		return
	}
	t.cleared = true
	delete(l.timersByID, h)
	if t.index >= 0 {
		heap.Remove(&l.timers, t.index)
	}
}

func (l *Loop) schedule(fn func(), delay, interval time.Duration) TimerHandle {
	if fn == nil {
		panic("loop: nil timer callback")
	}
	if delay < 0 {
		delay = 0
	}

	l.lastHandle++
	t := &timer{
		handle:   l.lastHandle,
		deadline: l.clock.Now() + delay,
		seq:      l.seq.Next(),
		interval: interval,
		fn:       fn,
	}
	heap.Push(&l.timers, t)
	l.timersByID[t.handle] = t
	return t.handle
}

// nextDeadline returns the earliest pending timer deadline.
// Returns (0, false) when no timers are scheduled.
func (l *Loop) nextDeadline() (time.Duration, bool) {
	if len(l.timers) == 0 {
		return 0, false
	}
	return l.timers[0].deadline, true
}

// fireDueTimer pops and runs the earliest timer whose deadline has been
// reached. Returns false if no timer is due.
//
// Repeating timers are rescheduled with a fresh seq before their callback
// runs, so a callback clearing its own handle works as expected.
func (l *Loop) fireDueTimer() bool {
	if len(l.timers) == 0 || l.timers[0].deadline > l.clock.Now() {
		return false
	}

	t := heap.Pop(&l.timers).(*timer)
	if t.cleared {
		return true // counted as progress; the slot is gone
	}

	if t.interval > 0 {
		// Reschedule relative to the deadline, not to Now, so intervals
		// do not drift under a WallClock.
		t.deadline += t.interval
		t.seq = l.seq.Next()
		heap.Push(&l.timers, t)
	} else {
		delete(l.timersByID, t.handle)
	}

	l.exec(task{fn: t.fn, label: "timer", seq: t.seq})
	return true
}

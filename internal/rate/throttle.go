package rate

import (
	"time"

	"github.com/suryaravikumar-space/loopkit/internal/loop"
)

// Throttled wraps a function so it runs at most once per limit window,
// plus one trailing invocation per window carrying the last swallowed
// argument.
type Throttled[T any] struct {
	lp    *loop.Loop
	fn    func(T)
	limit time.Duration
	cfg   config

	inWindow   bool
	timer      loop.TimerHandle
	pendingArg T
	hasPending bool
}

// Throttle wraps fn. Default edges: leading and trailing.
func Throttle[T any](lp *loop.Loop, fn func(T), limit time.Duration, opts ...Option) *Throttled[T] {
	if fn == nil {
		panic("rate: nil function")
	}
	cfg := config{leading: true, trailing: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Throttled[T]{lp: lp, fn: fn, limit: limit, cfg: cfg}
}

// Call invokes fn immediately when no window is open (leading edge),
// otherwise stores v for the trailing edge of the current window.
func (t *Throttled[T]) Call(v T) {
	if t.inWindow {
		t.pendingArg = v
		t.hasPending = true
		return
	}

	t.inWindow = true
	t.timer = t.lp.SetTimeout(t.onWindowEnd, t.limit)

	if t.cfg.leading {
		t.fn(v)
		return
	}
	t.pendingArg = v
	t.hasPending = true
}

func (t *Throttled[T]) onWindowEnd() {
	if t.cfg.trailing && t.hasPending {
		v := t.pendingArg
		t.hasPending = false
		var zero T
		t.pendingArg = zero

		// The trailing invocation opens the next window, so a steady
		// stream of calls settles into one invocation per limit.
		t.timer = t.lp.SetTimeout(t.onWindowEnd, t.limit)
		t.fn(v)
		return
	}
	t.inWindow = false
}

// Cancel closes the window and drops any pending trailing invocation.
func (t *Throttled[T]) Cancel() {
	if t.inWindow {
		t.lp.ClearTimer(t.timer)
		t.inWindow = false
	}
	t.hasPending = false
	var zero T
	t.pendingArg = zero
}

// Pending reports whether a trailing invocation is queued for the
// current window.
func (t *Throttled[T]) Pending() bool {
	return t.hasPending
}

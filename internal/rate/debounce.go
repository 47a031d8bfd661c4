package rate

import (
	"time"

	"github.com/suryaravikumar-space/loopkit/internal/loop"
)

// Debounced wraps a function so bursts of calls collapse into at most one
// leading and one trailing invocation per quiet period.
type Debounced[T any] struct {
	lp   *loop.Loop
	fn   func(T)
	wait time.Duration
	cfg  config

	timer      loop.TimerHandle
	timerSet   bool
	pendingArg T
	hasPending bool
}

// Debounce wraps fn. Each Call restarts a wait-long timer; fn runs with
// the latest argument once the timer survives untouched. Default edges:
// trailing only.
func Debounce[T any](lp *loop.Loop, fn func(T), wait time.Duration, opts ...Option) *Debounced[T] {
	if fn == nil {
		panic("rate: nil function")
	}
	cfg := config{trailing: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Debounced[T]{lp: lp, fn: fn, wait: wait, cfg: cfg}
}

// Call records v as the latest argument and restarts the quiet-period
// timer. On the first call of a burst, a leading-edge wrapper invokes
// immediately.
func (d *Debounced[T]) Call(v T) {
	first := !d.timerSet
	if d.timerSet {
		d.lp.ClearTimer(d.timer)
	}
	d.timer = d.lp.SetTimeout(d.onQuiet, d.wait)
	d.timerSet = true

	if first && d.cfg.leading {
		d.fn(v)
		return
	}
	d.pendingArg = v
	d.hasPending = true
}

func (d *Debounced[T]) onQuiet() {
	d.timerSet = false
	if d.cfg.trailing && d.hasPending {
		d.invoke()
		return
	}
	// The recorded argument is dead once the quiet period ends.
	d.hasPending = false
	var zero T
	d.pendingArg = zero
}

func (d *Debounced[T]) invoke() {
	v := d.pendingArg
	d.hasPending = false
	var zero T
	d.pendingArg = zero
	d.fn(v)
}

// Cancel drops the pending invocation and stops the timer.
func (d *Debounced[T]) Cancel() {
	if d.timerSet {
		d.lp.ClearTimer(d.timer)
		d.timerSet = false
	}
	d.hasPending = false
	var zero T
	d.pendingArg = zero
}

// Flush invokes the pending trailing call immediately, if any.
func (d *Debounced[T]) Flush() {
	if !d.timerSet {
		return
	}
	d.lp.ClearTimer(d.timer)
	d.timerSet = false
	if d.cfg.trailing && d.hasPending {
		d.invoke()
	}
}

// Pending reports whether a quiet-period timer is running.
func (d *Debounced[T]) Pending() bool {
	return d.timerSet
}

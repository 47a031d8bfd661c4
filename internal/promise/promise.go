package promise

import (
	"errors"
	"log/slog"

	"github.com/suryaravikumar-space/loopkit/internal/loop"
)

// ErrRejected is substituted when a promise is rejected with a nil error.
var ErrRejected = errors.New("promise: rejected")

// State is a promise's settlement state.
type State int

const (
	// Pending means the promise has not settled.
	Pending State = iota
	// Fulfilled means the promise settled with a value.
	Fulfilled
	// Rejected means the promise settled with an error.
	Rejected
)

// String returns the lowercase state name, matching the status strings
// used by AllSettled.
func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Promise is a settle-once container for an eventual value or error.
//
// INVARIANTS:
//   - State transitions Pending->Fulfilled or Pending->Rejected, once
//   - Callbacks run as microtasks, in subscription order
//   - After settlement, Value/Err never change
type Promise[T any] struct {
	lp        *loop.Loop
	state     State
	value     T
	reason    error
	handled   bool
	callbacks []func()
}

func newPromise[T any](lp *loop.Loop) *Promise[T] {
	if lp == nil {
		panic("promise: nil loop")
	}
	return &Promise[T]{lp: lp}
}

// Deferred pairs a Promise with the authority to settle it.
// Hand out the Promise, keep the Deferred.
type Deferred[T any] struct {
	p *Promise[T]
}

// NewDeferred creates a pending promise and its settle handle.
func NewDeferred[T any](lp *loop.Loop) *Deferred[T] {
	return &Deferred[T]{p: newPromise[T](lp)}
}

// Promise returns the deferred's promise.
func (d *Deferred[T]) Promise() *Promise[T] {
	return d.p
}

// Resolve fulfills the promise with v. No-op if already settled.
func (d *Deferred[T]) Resolve(v T) {
	d.p.resolve(v)
}

// Reject rejects the promise with err (nil becomes ErrRejected).
// No-op if already settled.
func (d *Deferred[T]) Reject(err error) {
	d.p.reject(err)
}

// Resolved returns a promise already fulfilled with v.
func Resolved[T any](lp *loop.Loop, v T) *Promise[T] {
	p := newPromise[T](lp)
	p.resolve(v)
	return p
}

// RejectedPromise returns a promise already rejected with err.
func RejectedPromise[T any](lp *loop.Loop, err error) *Promise[T] {
	p := newPromise[T](lp)
	p.reject(err)
	return p
}

// State returns the current settlement state.
func (p *Promise[T]) State() State {
	return p.state
}

// Value returns the fulfillment value and whether the promise fulfilled.
func (p *Promise[T]) Value() (T, bool) {
	if p.state != Fulfilled {
		var zero T
		return zero, false
	}
	return p.value, true
}

// Err returns the rejection reason, or nil unless rejected.
func (p *Promise[T]) Err() error {
	if p.state != Rejected {
		return nil
	}
	return p.reason
}

// Done subscribes to settlement. The matching callback runs as a
// microtask; either argument may be nil. Passing a non-nil onRejected
// counts as handling the rejection for the unhandled-rejection warning.
func (p *Promise[T]) Done(onFulfilled func(T), onRejected func(error)) {
	if onRejected != nil {
		p.handled = true
	}

	run := func() {
		switch p.state {
		case Fulfilled:
			if onFulfilled != nil {
				onFulfilled(p.value)
			}
		case Rejected:
			if onRejected != nil {
				onRejected(p.reason)
			}
		}
	}

	if p.state == Pending {
		p.callbacks = append(p.callbacks, run)
		return
	}
	p.lp.QueueMicrotask(run)
}

func (p *Promise[T]) resolve(v T) {
	if p.state != Pending {
		return
	}
	p.state = Fulfilled
	p.value = v
	p.flush()
}

func (p *Promise[T]) reject(err error) {
	if p.state != Pending {
		return
	}
	if err == nil {
		err = ErrRejected
	}
	p.state = Rejected
	p.reason = err
	p.flush()

	// Handlers attached in the settlement drain still count; warn only
	// if the rejection is unclaimed after that.
	p.lp.QueueMicrotask(func() {
		if !p.handled {
			slog.Warn("unhandled promise rejection", "reason", p.reason)
		}
	})
}

func (p *Promise[T]) flush() {
	callbacks := p.callbacks
	p.callbacks = nil
	for _, cb := range callbacks {
		p.lp.QueueMicrotask(cb)
	}
}

// Then returns a promise for f applied to p's value. If p rejects, or f
// returns an error, the returned promise rejects.
func Then[T, U any](p *Promise[T], f func(T) (U, error)) *Promise[U] {
	out := newPromise[U](p.lp)
	p.Done(
		func(v T) {
			u, err := f(v)
			if err != nil {
				out.reject(err)
				return
			}
			out.resolve(u)
		},
		out.reject,
	)
	return out
}

// ThenPromise is Then for async continuations: the returned promise adopts
// the settlement of the promise f produces.
func ThenPromise[T, U any](p *Promise[T], f func(T) *Promise[U]) *Promise[U] {
	out := newPromise[U](p.lp)
	p.Done(
		func(v T) {
			next := f(v)
			if next == nil {
				out.reject(errors.New("promise: ThenPromise continuation returned nil"))
				return
			}
			next.Done(out.resolve, out.reject)
		},
		out.reject,
	)
	return out
}

// Catch returns a promise that recovers from p's rejection using f.
// Fulfillment passes through untouched; if f returns an error the
// returned promise rejects with it.
func Catch[T any](p *Promise[T], f func(error) (T, error)) *Promise[T] {
	out := newPromise[T](p.lp)
	p.Done(
		out.resolve,
		func(cause error) {
			v, err := f(cause)
			if err != nil {
				out.reject(err)
				return
			}
			out.resolve(v)
		},
	)
	return out
}

// Finally runs f on any settlement and passes the settlement through.
func Finally[T any](p *Promise[T], f func()) *Promise[T] {
	out := newPromise[T](p.lp)
	p.Done(
		func(v T) {
			f()
			out.resolve(v)
		},
		func(err error) {
			f()
			out.reject(err)
		},
	)
	return out
}

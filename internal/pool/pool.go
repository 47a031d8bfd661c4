// Package pool runs promise-returning thunks serially or with bounded
// concurrency on the loop.
//
// SerialQueue starts at most one thunk at a time in FIFO order and keeps
// draining after a rejection. All runs a batch with a concurrency cap,
// preserving input order in the results and rejecting on the first
// error. Both are loop-goroutine only.
package pool

import (
	"github.com/suryaravikumar-space/loopkit/internal/loop"
	"github.com/suryaravikumar-space/loopkit/internal/promise"
)

// Thunk is a unit of deferred work. Calling it starts the work and
// returns the promise for its result.
type Thunk[T any] func() *promise.Promise[T]

type queued[T any] struct {
	thunk Thunk[T]
	d     *promise.Deferred[T]
}

// SerialQueue runs thunks one at a time in the order they were added.
type SerialQueue[T any] struct {
	lp      *loop.Loop
	pending []queued[T]
	running bool
}

// NewSerialQueue returns an empty queue bound to lp.
func NewSerialQueue[T any](lp *loop.Loop) *SerialQueue[T] {
	return &SerialQueue[T]{lp: lp}
}

// Add enqueues thunk and returns a promise for its result. The thunk
// starts once every earlier thunk has settled; a rejection settles that
// thunk's promise and the queue moves on.
func (q *SerialQueue[T]) Add(thunk Thunk[T]) *promise.Promise[T] {
	if thunk == nil {
		panic("pool: nil thunk")
	}
	item := queued[T]{thunk: thunk, d: promise.NewDeferred[T](q.lp)}
	q.pending = append(q.pending, item)
	if !q.running {
		q.runNext()
	}
	return item.d.Promise()
}

// Len returns the number of thunks waiting to start. The running thunk,
// if any, is not counted.
func (q *SerialQueue[T]) Len() int {
	return len(q.pending)
}

// Idle reports whether no thunk is running or waiting.
func (q *SerialQueue[T]) Idle() bool {
	return !q.running && len(q.pending) == 0
}

func (q *SerialQueue[T]) runNext() {
	if len(q.pending) == 0 {
		q.running = false
		return
	}
	item := q.pending[0]
	q.pending[0] = queued[T]{}
	q.pending = q.pending[1:]
	q.running = true

	// The next thunk starts on a fresh microtask so callbacks on the
	// settled promise observe the result before new work begins.
	item.thunk().Done(
		func(v T) {
			item.d.Resolve(v)
			q.lp.QueueMicrotask(q.runNext)
		},
		func(err error) {
			item.d.Reject(err)
			q.lp.QueueMicrotask(q.runNext)
		},
	)
}

// All runs thunks with at most concurrency in flight and fulfills with
// the results in input order. The first rejection rejects the returned
// promise and stops new thunks from starting; thunks already in flight
// run to completion but their settlements are ignored.
//
// A non-nil signal cancels the batch: no new thunks start after it
// fires, and the promise rejects with the abort reason.
func All[T any](lp *loop.Loop, concurrency int, thunks []Thunk[T], signal *loop.AbortSignal) *promise.Promise[[]T] {
	if concurrency <= 0 {
		panic("pool: concurrency must be positive")
	}
	if len(thunks) == 0 {
		return promise.Resolved(lp, []T{})
	}
	if signal.Aborted() {
		return promise.RejectedPromise[[]T](lp, signal.Reason())
	}

	d := promise.NewDeferred[[]T](lp)
	results := make([]T, len(thunks))
	var (
		next      int
		inFlight  int
		remaining = len(thunks)
		done      bool
	)

	var startMore func()
	startMore = func() {
		for !done && inFlight < concurrency && next < len(thunks) {
			i := next
			next++
			inFlight++
			thunks[i]().Done(
				func(v T) {
					inFlight--
					if done {
						return
					}
					results[i] = v
					remaining--
					if remaining == 0 {
						done = true
						d.Resolve(results)
						return
					}
					startMore()
				},
				func(err error) {
					inFlight--
					if done {
						return
					}
					done = true
					d.Reject(err)
				},
			)
		}
	}

	if signal != nil {
		signal.OnAbort(func(reason error) {
			if done {
				return
			}
			done = true
			d.Reject(reason)
		})
	}

	startMore()
	return d.Promise()
}

package promise

import (
	"fmt"

	"github.com/suryaravikumar-space/loopkit/internal/loop"
)

// All returns a promise for every input's value, in input order.
// It rejects as soon as any input rejects. With no inputs it fulfills
// with an empty slice.
func All[T any](lp *loop.Loop, ps ...*Promise[T]) *Promise[[]T] {
	out := newPromise[[]T](lp)

	remaining := len(ps)
	if remaining == 0 {
		out.resolve([]T{})
		return out
	}

	results := make([]T, len(ps))
	for i, p := range ps {
		i, p := i, p
		p.Done(
			func(v T) {
				results[i] = v
				if remaining--; remaining == 0 {
					out.resolve(results)
				}
			},
			out.reject,
		)
	}
	return out
}

// Race settles with the first input to settle, value or error.
// With no inputs the returned promise stays pending forever.
func Race[T any](lp *loop.Loop, ps ...*Promise[T]) *Promise[T] {
	out := newPromise[T](lp)
	for _, p := range ps {
		p.Done(out.resolve, out.reject)
	}
	return out
}

// AggregateError is Any's rejection reason when every input rejected.
type AggregateError struct {
	Errors []error
}

// Error implements the error interface.
func (e *AggregateError) Error() string {
	return fmt.Sprintf("promise: all %d promises rejected", len(e.Errors))
}

// Unwrap exposes the individual rejections to errors.Is/As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// Any fulfills with the first input to fulfill. If every input rejects,
// it rejects with an AggregateError holding all reasons in input order.
// With no inputs it rejects immediately with an empty AggregateError.
func Any[T any](lp *loop.Loop, ps ...*Promise[T]) *Promise[T] {
	out := newPromise[T](lp)

	remaining := len(ps)
	if remaining == 0 {
		out.reject(&AggregateError{})
		return out
	}

	reasons := make([]error, len(ps))
	for i, p := range ps {
		i, p := i, p
		p.Done(
			out.resolve,
			func(err error) {
				reasons[i] = err
				if remaining--; remaining == 0 {
					out.reject(&AggregateError{Errors: reasons})
				}
			},
		)
	}
	return out
}

// Settlement records one input's outcome for AllSettled.
type Settlement[T any] struct {
	Status State // Fulfilled or Rejected
	Value  T     // set when Status == Fulfilled
	Reason error // set when Status == Rejected
}

// AllSettled waits for every input to settle and fulfills with their
// outcomes in input order. It never rejects.
func AllSettled[T any](lp *loop.Loop, ps ...*Promise[T]) *Promise[[]Settlement[T]] {
	out := newPromise[[]Settlement[T]](lp)

	remaining := len(ps)
	if remaining == 0 {
		out.resolve([]Settlement[T]{})
		return out
	}

	results := make([]Settlement[T], len(ps))
	settle := func(i int, s Settlement[T]) {
		results[i] = s
		if remaining--; remaining == 0 {
			out.resolve(results)
		}
	}

	for i, p := range ps {
		i, p := i, p
		p.Done(
			func(v T) { settle(i, Settlement[T]{Status: Fulfilled, Value: v}) },
			func(err error) { settle(i, Settlement[T]{Status: Rejected, Reason: err}) },
		)
	}
	return out
}

// Package store implements a minimal reducer store with middleware.
//
// State flows one way: Dispatch runs the action through the middleware
// chain, the reducer computes the next state, and subscribers are
// notified in subscription order. Reducers must be pure; the store never
// mutates state itself, it only swaps the value the reducer returns.
//
// A Store is loop-goroutine only. Dispatching from a reducer or a
// subscriber is rejected with ErrReentrantDispatch instead of recursing.
package store

import "errors"

// ErrReentrantDispatch is returned when Dispatch is called while a
// dispatch is already in progress.
var ErrReentrantDispatch = errors.New("store: dispatch during dispatch")

// Reducer computes the next state from the current state and an action.
type Reducer[S, A any] func(S, A) S

// Dispatch sends an action through the store.
type Dispatch[A any] func(A) error

// Middleware wraps the dispatch pipeline. It receives the next dispatch
// in the chain and returns its replacement.
type Middleware[S, A any] func(s *Store[S, A], next Dispatch[A]) Dispatch[A]

type subscriber[S any] struct {
	id int64
	fn func(S)
}

// Store holds state and delivers it to subscribers after every dispatch.
type Store[S, A any] struct {
	reducer     Reducer[S, A]
	state       S
	subscribers []subscriber[S]
	lastSubID   int64
	dispatch    Dispatch[A]
	dispatching bool
}

// New builds a store from a reducer and an initial state. Middlewares
// compose right to left around the base dispatch, so the first listed
// middleware sees every action first.
func New[S, A any](reducer Reducer[S, A], initial S, middlewares ...Middleware[S, A]) *Store[S, A] {
	if reducer == nil {
		panic("store: nil reducer")
	}
	s := &Store[S, A]{reducer: reducer, state: initial}
	s.dispatch = s.baseDispatch
	for i := len(middlewares) - 1; i >= 0; i-- {
		s.dispatch = middlewares[i](s, s.dispatch)
	}
	return s
}

// GetState returns the current state.
func (s *Store[S, A]) GetState() S {
	return s.state
}

// Dispatch runs a through the middleware chain and the reducer, then
// notifies subscribers with the new state.
func (s *Store[S, A]) Dispatch(a A) error {
	if s.dispatching {
		return ErrReentrantDispatch
	}
	s.dispatching = true
	defer func() { s.dispatching = false }()
	return s.dispatch(a)
}

func (s *Store[S, A]) baseDispatch(a A) error {
	s.state = s.reducer(s.state, a)

	// Snapshot so unsubscribing (or subscribing) during notification
	// takes effect for the next dispatch, not this one.
	subs := make([]subscriber[S], len(s.subscribers))
	copy(subs, s.subscribers)
	for _, sub := range subs {
		sub.fn(s.state)
	}
	return nil
}

// Subscribe registers fn to run after every dispatch. The returned
// function removes the subscription and is safe to call more than once.
func (s *Store[S, A]) Subscribe(fn func(S)) (unsubscribe func()) {
	if fn == nil {
		panic("store: nil subscriber")
	}
	s.lastSubID++
	id := s.lastSubID
	s.subscribers = append(s.subscribers, subscriber[S]{id: id, fn: fn})
	return func() {
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// SubscriberCount returns the number of active subscriptions.
func (s *Store[S, A]) SubscriberCount() int {
	return len(s.subscribers)
}

package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counterAction struct {
	kind string
	by   int
}

func counterReducer(state int, a counterAction) int {
	switch a.kind {
	case "increment":
		return state + a.by
	case "decrement":
		return state - a.by
	default:
		return state
	}
}

func TestStore_DispatchUpdatesState(t *testing.T) {
	s := New(counterReducer, 0)

	require.NoError(t, s.Dispatch(counterAction{kind: "increment", by: 3}))
	require.NoError(t, s.Dispatch(counterAction{kind: "decrement", by: 1}))

	assert.Equal(t, 2, s.GetState())
}

func TestStore_UnknownActionLeavesStateUnchanged(t *testing.T) {
	s := New(counterReducer, 5)

	require.NoError(t, s.Dispatch(counterAction{kind: "reset-to-zero"}))

	assert.Equal(t, 5, s.GetState())
}

func TestStore_SubscribersNotifiedInOrder(t *testing.T) {
	s := New(counterReducer, 0)
	var got []string

	s.Subscribe(func(state int) { got = append(got, fmt.Sprintf("a=%d", state)) })
	s.Subscribe(func(state int) { got = append(got, fmt.Sprintf("b=%d", state)) })

	require.NoError(t, s.Dispatch(counterAction{kind: "increment", by: 1}))
	require.NoError(t, s.Dispatch(counterAction{kind: "increment", by: 1}))

	assert.Equal(t, []string{"a=1", "b=1", "a=2", "b=2"}, got)
}

func TestStore_UnsubscribeStopsNotifications(t *testing.T) {
	s := New(counterReducer, 0)
	calls := 0

	unsub := s.Subscribe(func(int) { calls++ })
	require.NoError(t, s.Dispatch(counterAction{kind: "increment", by: 1}))

	unsub()
	unsub() // second call is a no-op
	require.NoError(t, s.Dispatch(counterAction{kind: "increment", by: 1}))

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, s.SubscriberCount())
}

func TestStore_UnsubscribeDuringNotifyTakesEffectNextDispatch(t *testing.T) {
	s := New(counterReducer, 0)
	var got []string
	var unsubB func()

	s.Subscribe(func(int) {
		got = append(got, "a")
		unsubB()
	})
	unsubB = s.Subscribe(func(int) { got = append(got, "b") })

	// The snapshot taken before notification still includes b.
	require.NoError(t, s.Dispatch(counterAction{kind: "increment", by: 1}))
	assert.Equal(t, []string{"a", "b"}, got)

	require.NoError(t, s.Dispatch(counterAction{kind: "increment", by: 1}))
	assert.Equal(t, []string{"a", "b", "a"}, got)
}

func TestStore_DispatchFromSubscriberIsReentrant(t *testing.T) {
	s := New(counterReducer, 0)
	var reentrantErr error

	s.Subscribe(func(state int) {
		if state == 1 {
			reentrantErr = s.Dispatch(counterAction{kind: "increment", by: 10})
		}
	})

	require.NoError(t, s.Dispatch(counterAction{kind: "increment", by: 1}))

	assert.ErrorIs(t, reentrantErr, ErrReentrantDispatch)
	assert.Equal(t, 1, s.GetState())
}

func TestStore_DispatchFromReducerIsReentrant(t *testing.T) {
	var s *Store[int, counterAction]
	var reentrantErr error
	s = New(func(state int, a counterAction) int {
		if a.kind == "sneaky" {
			reentrantErr = s.Dispatch(counterAction{kind: "increment", by: 1})
		}
		return counterReducer(state, a)
	}, 0)

	require.NoError(t, s.Dispatch(counterAction{kind: "sneaky"}))

	assert.ErrorIs(t, reentrantErr, ErrReentrantDispatch)
}

func TestStore_MiddlewareComposesRightToLeft(t *testing.T) {
	var got []string
	tag := func(name string) Middleware[int, counterAction] {
		return func(_ *Store[int, counterAction], next Dispatch[counterAction]) Dispatch[counterAction] {
			return func(a counterAction) error {
				got = append(got, name+">")
				err := next(a)
				got = append(got, "<"+name)
				return err
			}
		}
	}

	s := New(counterReducer, 0, tag("outer"), tag("inner"))
	s.Subscribe(func(int) { got = append(got, "notify") })

	require.NoError(t, s.Dispatch(counterAction{kind: "increment", by: 1}))

	assert.Equal(t, []string{"outer>", "inner>", "notify", "<inner", "<outer"}, got)
	assert.Equal(t, 1, s.GetState())
}

func TestStore_MiddlewareCanShortCircuit(t *testing.T) {
	drop := func(_ *Store[int, counterAction], next Dispatch[counterAction]) Dispatch[counterAction] {
		return func(a counterAction) error {
			if a.kind == "blocked" {
				return nil
			}
			return next(a)
		}
	}

	s := New(counterReducer, 0, drop)
	require.NoError(t, s.Dispatch(counterAction{kind: "blocked", by: 100}))
	assert.Equal(t, 0, s.GetState())

	require.NoError(t, s.Dispatch(counterAction{kind: "increment", by: 2}))
	assert.Equal(t, 2, s.GetState())
}

func TestStore_MiddlewareCanReadState(t *testing.T) {
	var seen []int
	logger := func(s *Store[int, counterAction], next Dispatch[counterAction]) Dispatch[counterAction] {
		return func(a counterAction) error {
			err := next(a)
			seen = append(seen, s.GetState())
			return err
		}
	}

	s := New(counterReducer, 0, logger)
	require.NoError(t, s.Dispatch(counterAction{kind: "increment", by: 1}))
	require.NoError(t, s.Dispatch(counterAction{kind: "increment", by: 1}))

	assert.Equal(t, []int{1, 2}, seen)
}

func TestStore_NilReducerPanics(t *testing.T) {
	assert.Panics(t, func() { New[int, counterAction](nil, 0) })
}

package memo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suryaravikumar-space/loopkit/internal/loop"
	"github.com/suryaravikumar-space/loopkit/internal/promise"
)

func TestMemoize_CallsUnderlyingOncePerKey(t *testing.T) {
	calls := 0
	square := Memoize(func(n int) int {
		calls++
		return n * n
	})

	assert.Equal(t, 16, square.Call(4))
	assert.Equal(t, 16, square.Call(4))
	assert.Equal(t, 25, square.Call(5))
	assert.Equal(t, 16, square.Call(4))

	assert.Equal(t, 2, calls)
	assert.Equal(t, Stats{Hits: 2, Misses: 2}, square.Stats())
	assert.Equal(t, 2, square.Len())
}

func TestMemoize_Forget(t *testing.T) {
	calls := 0
	m := Memoize(func(s string) int {
		calls++
		return len(s)
	})

	m.Call("hello")
	m.Forget("hello")
	m.Call("hello")

	assert.Equal(t, 2, calls)
}

func TestMemoize_Reset(t *testing.T) {
	m := Memoize(func(n int) int { return n })
	m.Call(1)
	m.Call(1)

	m.Reset()

	assert.Equal(t, Stats{}, m.Stats())
	assert.Equal(t, 0, m.Len())
}

func TestMemoize_NilFunctionPanics(t *testing.T) {
	assert.Panics(t, func() { Memoize[int, int](nil) })
}

func TestMemoizeAsync_ConcurrentCallersShareOneComputation(t *testing.T) {
	lp := loop.New()
	starts := 0
	var got []string

	lp.Post(func() {
		fetch := MemoizeAsync(lp, func(key string) *promise.Promise[string] {
			starts++
			d := promise.NewDeferred[string](lp)
			lp.SetTimeout(func() { d.Resolve("value-" + key) }, 50*time.Millisecond)
			return d.Promise()
		})

		// Both calls land before the 50ms resolution, so they must
		// share the in-flight promise.
		fetch.Call("a").Done(func(v string) { got = append(got, "first:"+v) }, nil)
		fetch.Call("a").Done(func(v string) { got = append(got, "second:"+v) }, nil)
	})

	require.NoError(t, lp.Run(context.Background()))
	assert.Equal(t, 1, starts)
	assert.Equal(t, []string{"first:value-a", "second:value-a"}, got)
}

func TestMemoizeAsync_RejectionEvictsForRetry(t *testing.T) {
	lp := loop.New()
	attempts := 0
	var result string
	var firstErr error

	lp.Post(func() {
		fetch := MemoizeAsync(lp, func(key string) *promise.Promise[string] {
			attempts++
			if attempts == 1 {
				return promise.RejectedPromise[string](lp, errors.New("backend down"))
			}
			return promise.Resolved(lp, "ok")
		})

		fetch.Call("k").Done(nil, func(err error) {
			firstErr = err
			// The rejected promise is evicted once settled, so this
			// retry runs the underlying function again.
			lp.Post(func() {
				fetch.Call("k").Done(func(v string) { result = v }, nil)
			})
		})
	})

	require.NoError(t, lp.Run(context.Background()))
	assert.Equal(t, 2, attempts)
	assert.EqualError(t, firstErr, "backend down")
	assert.Equal(t, "ok", result)
}

func TestMemoizeAsync_FulfilledPromiseStaysCached(t *testing.T) {
	lp := loop.New()
	starts := 0

	lp.Post(func() {
		fetch := MemoizeAsync(lp, func(int) *promise.Promise[int] {
			starts++
			return promise.Resolved(lp, 7)
		})
		fetch.Call(1)
		// Re-call after settlement; the fulfilled promise must survive.
		lp.SetTimeout(func() {
			fetch.Call(1)
			assert.Equal(t, 1, fetch.Len())
		}, 10*time.Millisecond)
	})

	require.NoError(t, lp.Run(context.Background()))
	assert.Equal(t, 1, starts)
}

func TestBoundedCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewBoundedCache[string, int](3)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok := c.Get("a")
	require.True(t, ok)

	evicted, didEvict := c.Put("d", 4)
	assert.True(t, didEvict)
	assert.Equal(t, "b", evicted)

	_, ok = c.Get("b")
	assert.False(t, ok)
	assert.Equal(t, []string{"d", "a", "c"}, c.Keys())
}

func TestBoundedCache_PutExistingRefreshesWithoutEviction(t *testing.T) {
	c := NewBoundedCache[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)

	_, didEvict := c.Put("a", 10)
	assert.False(t, didEvict)
	assert.Equal(t, 2, c.Len())

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10, v)
	assert.Equal(t, []string{"a", "b"}, c.Keys())
}

func TestBoundedCache_PeekDoesNotRefresh(t *testing.T) {
	c := NewBoundedCache[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)

	v, ok := c.Peek("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	// "a" is still least recently used despite the Peek.
	evicted, didEvict := c.Put("c", 3)
	assert.True(t, didEvict)
	assert.Equal(t, "a", evicted)
}

func TestBoundedCache_Remove(t *testing.T) {
	c := NewBoundedCache[int, string](2)
	c.Put(1, "one")

	assert.True(t, c.Remove(1))
	assert.False(t, c.Remove(1))
	assert.Equal(t, 0, c.Len())
}

func TestBoundedCache_ZeroCapacityPanics(t *testing.T) {
	assert.Panics(t, func() { NewBoundedCache[int, int](0) })
}

type appState struct {
	items []int
	theme string
}

func TestSelector_RecomputesOnlyOnInputChange(t *testing.T) {
	sel := NewSelector(
		func(s appState) int { return len(s.items) },
		func(n int) string {
			if n == 1 {
				return "1 item"
			}
			return "many items"
		},
	)

	s := appState{items: []int{1, 2}, theme: "dark"}
	assert.Equal(t, "many items", sel.Select(s))
	assert.Equal(t, 1, sel.Recomputations())

	// An unrelated field change does not invalidate the result.
	s.theme = "light"
	assert.Equal(t, "many items", sel.Select(s))
	assert.Equal(t, 1, sel.Recomputations())

	s.items = []int{1}
	assert.Equal(t, "1 item", sel.Select(s))
	assert.Equal(t, 2, sel.Recomputations())
}

func TestSelector2_EitherInputTriggersRecompute(t *testing.T) {
	type cart struct {
		count int
		unit  int
		note  string
	}
	total := NewSelector2(
		func(c cart) int { return c.count },
		func(c cart) int { return c.unit },
		func(count, unit int) int { return count * unit },
	)

	c := cart{count: 2, unit: 5}
	assert.Equal(t, 10, total.Select(c))
	c.note = "gift"
	assert.Equal(t, 10, total.Select(c))
	assert.Equal(t, 1, total.Recomputations())

	c.unit = 6
	assert.Equal(t, 12, total.Select(c))
	assert.Equal(t, 2, total.Recomputations())
}

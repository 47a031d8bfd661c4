package rate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suryaravikumar-space/loopkit/internal/loop"
)

func TestThrottle_LeadingPlusTrailing(t *testing.T) {
	lp := loop.New()
	var got []string

	lp.Post(func() {
		th := Throttle(lp, func(v string) { got = append(got, v) }, 100*time.Millisecond)
		th.Call("a")
		th.Call("b")
		th.Call("c")
	})

	require.NoError(t, lp.Run(context.Background()))
	// Leading edge fires with the first argument, the trailing edge
	// carries the last swallowed one.
	assert.Equal(t, []string{"a", "c"}, got)
}

func TestThrottle_SteadyStreamOnePerWindow(t *testing.T) {
	lp := loop.New()
	var stamps []time.Duration

	lp.Post(func() {
		th := Throttle(lp, func(int) { stamps = append(stamps, lp.Now()) }, 100*time.Millisecond)
		var h loop.TimerHandle
		n := 0
		h = lp.SetInterval(func() {
			n++
			th.Call(n)
			if n == 25 {
				lp.ClearTimer(h)
			}
		}, 10*time.Millisecond)
	})

	require.NoError(t, lp.Run(context.Background()))
	// 25 calls over 250ms settle into one invocation per 100ms window.
	require.NotEmpty(t, stamps)
	for i := 1; i < len(stamps); i++ {
		assert.GreaterOrEqual(t, stamps[i]-stamps[i-1], 100*time.Millisecond,
			"invocations %d and %d closer than the limit", i-1, i)
	}
}

func TestThrottle_NoTrailingWithoutSwallowedCalls(t *testing.T) {
	lp := loop.New()
	calls := 0

	lp.Post(func() {
		th := Throttle(lp, func(int) { calls++ }, 100*time.Millisecond)
		th.Call(1)
	})

	require.NoError(t, lp.Run(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestThrottle_TrailingOnly(t *testing.T) {
	lp := loop.New()
	var got []string

	lp.Post(func() {
		th := Throttle(lp, func(v string) { got = append(got, v) }, 100*time.Millisecond,
			WithoutLeading())
		th.Call("a")
		th.Call("b")
	})

	require.NoError(t, lp.Run(context.Background()))
	assert.Equal(t, []string{"b"}, got)
}

func TestThrottle_LeadingOnly(t *testing.T) {
	lp := loop.New()
	var got []string

	lp.Post(func() {
		th := Throttle(lp, func(v string) { got = append(got, v) }, 100*time.Millisecond,
			WithoutTrailing())
		th.Call("a")
		th.Call("b")
		// A call after the window opens a fresh one.
		lp.SetTimeout(func() { th.Call("c") }, 150*time.Millisecond)
	})

	require.NoError(t, lp.Run(context.Background()))
	assert.Equal(t, []string{"a", "c"}, got)
}

func TestThrottle_Cancel(t *testing.T) {
	lp := loop.New()
	var got []string

	lp.Post(func() {
		th := Throttle(lp, func(v string) { got = append(got, v) }, 100*time.Millisecond)
		th.Call("a")
		th.Call("b")
		lp.SetTimeout(func() {
			th.Cancel()
			assert.False(t, th.Pending())
		}, 50*time.Millisecond)
	})

	require.NoError(t, lp.Run(context.Background()))
	// The trailing "b" is dropped by Cancel; only the leading edge ran.
	assert.Equal(t, []string{"a"}, got)
}

func TestThrottle_NilFunctionPanics(t *testing.T) {
	lp := loop.New()
	assert.Panics(t, func() { Throttle[int](lp, nil, time.Second) })
}

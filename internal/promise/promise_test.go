package promise

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suryaravikumar-space/loopkit/internal/loop"
)

// runToQuiescence drives lp until nothing remains scheduled.
func runToQuiescence(t *testing.T, lp *loop.Loop) {
	t.Helper()
	require.NoError(t, lp.Run(context.Background()))
}

func TestDeferred_ResolveFulfills(t *testing.T) {
	lp := loop.New()
	var got int

	lp.Post(func() {
		d := NewDeferred[int](lp)
		d.Promise().Done(func(v int) { got = v }, nil)
		d.Resolve(42)
	})
	runToQuiescence(t, lp)

	assert.Equal(t, 42, got)
}

func TestResolved_CallbackAttachedBeforeRunDelivers(t *testing.T) {
	// Settlement flushes callbacks into the microtask queue. Callbacks
	// attached during setup must still be delivered once Run starts.
	lp := loop.New()
	var got int

	Resolved(lp, 42).Done(func(v int) { got = v }, nil)
	runToQuiescence(t, lp)

	assert.Equal(t, 42, got)
}

func TestDeferred_RejectRejects(t *testing.T) {
	lp := loop.New()
	cause := errors.New("nope")
	var got error

	lp.Post(func() {
		d := NewDeferred[int](lp)
		d.Promise().Done(nil, func(err error) { got = err })
		d.Reject(cause)
	})
	runToQuiescence(t, lp)

	assert.ErrorIs(t, got, cause)
}

func TestDeferred_SettleOnce(t *testing.T) {
	lp := loop.New()
	var values []int
	var rejections []error

	lp.Post(func() {
		d := NewDeferred[int](lp)
		d.Promise().Done(
			func(v int) { values = append(values, v) },
			func(err error) { rejections = append(rejections, err) },
		)
		d.Resolve(1)
		d.Resolve(2)               // ignored
		d.Reject(errors.New("x")) // ignored
	})
	runToQuiescence(t, lp)

	assert.Equal(t, []int{1}, values, "first settlement wins")
	assert.Empty(t, rejections)
}

func TestDeferred_RejectNilBecomesErrRejected(t *testing.T) {
	lp := loop.New()
	var got error

	lp.Post(func() {
		d := NewDeferred[int](lp)
		d.Promise().Done(nil, func(err error) { got = err })
		d.Reject(nil)
	})
	runToQuiescence(t, lp)

	assert.ErrorIs(t, got, ErrRejected)
}

func TestPromise_CallbacksAreNeverSynchronous(t *testing.T) {
	// The Zalgo rule: even on an already-settled promise, Done callbacks
	// wait for the current task to finish.
	lp := loop.New()
	var got []string

	lp.Post(func() {
		p := Resolved(lp, "value")
		p.Done(func(string) { got = append(got, "callback") }, nil)
		got = append(got, "after-done")
	})
	runToQuiescence(t, lp)

	assert.Equal(t, []string{"after-done", "callback"}, got)
}

func TestPromise_CallbacksRunInSubscriptionOrder(t *testing.T) {
	lp := loop.New()
	var got []string

	lp.Post(func() {
		d := NewDeferred[int](lp)
		d.Promise().Done(func(int) { got = append(got, "first") }, nil)
		d.Promise().Done(func(int) { got = append(got, "second") }, nil)
		d.Resolve(0)
	})
	runToQuiescence(t, lp)

	assert.Equal(t, []string{"first", "second"}, got)
}

func TestPromise_StateAccessors(t *testing.T) {
	lp := loop.New()

	lp.Post(func() {
		d := NewDeferred[string](lp)
		p := d.Promise()

		assert.Equal(t, Pending, p.State())
		_, ok := p.Value()
		assert.False(t, ok)
		assert.NoError(t, p.Err())

		d.Resolve("done")
		assert.Equal(t, Fulfilled, p.State())
		v, ok := p.Value()
		assert.True(t, ok)
		assert.Equal(t, "done", v)
	})
	runToQuiescence(t, lp)
}

func TestThen_TransformsValue(t *testing.T) {
	lp := loop.New()
	var got string

	lp.Post(func() {
		p := Resolved(lp, 21)
		doubled := Then(p, func(v int) (int, error) { return v * 2, nil })
		asText := Then(doubled, func(v int) (string, error) {
			if v != 42 {
				return "", errors.New("bad value")
			}
			return "forty-two", nil
		})
		asText.Done(func(v string) { got = v }, nil)
	})
	runToQuiescence(t, lp)

	assert.Equal(t, "forty-two", got)
}

func TestThen_PropagatesRejection(t *testing.T) {
	lp := loop.New()
	cause := errors.New("upstream")
	var got error
	ran := false

	lp.Post(func() {
		p := RejectedPromise[int](lp, cause)
		out := Then(p, func(v int) (int, error) {
			ran = true
			return v, nil
		})
		out.Done(nil, func(err error) { got = err })
	})
	runToQuiescence(t, lp)

	assert.False(t, ran, "transform must be skipped on rejection")
	assert.ErrorIs(t, got, cause)
}

func TestThenPromise_AdoptsInnerSettlement(t *testing.T) {
	lp := loop.New()
	var got int

	lp.Post(func() {
		p := Resolved(lp, 3)
		out := ThenPromise(p, func(v int) *Promise[int] {
			d := NewDeferred[int](lp)
			lp.SetTimeout(func() { d.Resolve(v * 10) }, 5)
			return d.Promise()
		})
		out.Done(func(v int) { got = v }, nil)
	})
	runToQuiescence(t, lp)

	assert.Equal(t, 30, got)
}

func TestCatch_RecoversRejection(t *testing.T) {
	lp := loop.New()
	var got int

	lp.Post(func() {
		p := RejectedPromise[int](lp, errors.New("failed"))
		recovered := Catch(p, func(error) (int, error) { return -1, nil })
		recovered.Done(func(v int) { got = v }, nil)
	})
	runToQuiescence(t, lp)

	assert.Equal(t, -1, got)
}

func TestCatch_PassesFulfillmentThrough(t *testing.T) {
	lp := loop.New()
	var got int
	ran := false

	lp.Post(func() {
		p := Resolved(lp, 7)
		out := Catch(p, func(error) (int, error) {
			ran = true
			return 0, nil
		})
		out.Done(func(v int) { got = v }, nil)
	})
	runToQuiescence(t, lp)

	assert.False(t, ran)
	assert.Equal(t, 7, got)
}

func TestFinally_RunsOnBothSettlements(t *testing.T) {
	lp := loop.New()
	var calls int
	var got error

	lp.Post(func() {
		Finally(Resolved(lp, 1), func() { calls++ }).Done(nil, nil)
		rejected := Finally(RejectedPromise[int](lp, errors.New("x")), func() { calls++ })
		rejected.Done(nil, func(err error) { got = err })
	})
	runToQuiescence(t, lp)

	assert.Equal(t, 2, calls)
	assert.Error(t, got)
}

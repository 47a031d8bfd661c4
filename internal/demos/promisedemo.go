package demos

import (
	"errors"
	"time"

	"github.com/suryaravikumar-space/loopkit/internal/loop"
	"github.com/suryaravikumar-space/loopkit/internal/promise"
)

func runDeferred(t *Transcript, lp *loop.Loop) error {
	lp.Post(func() {
		t.Section("settle once")
		d := promise.NewDeferred[string](lp)
		d.Promise().Done(func(v string) { t.Printf("fulfilled with %q", v) }, nil)
		d.Resolve("first")
		d.Resolve("second")
		d.Reject(errors.New("too late"))
		t.Printf("state after three settles: %v", d.Promise().State())

		t.Section("callbacks are asynchronous")
		p := promise.Resolved(lp, 42)
		p.Done(func(v int) { t.Printf("callback sees %d", v) }, nil)
		t.Printf("this line runs before the callback, even though the promise is settled")

		lp.SetTimeout(func() {
			t.Printf("takeaway: a deferred settles once; callbacks always run on a later microtask")
		}, 0)
	})
	return nil
}

func runCombinators(t *Transcript, lp *loop.Loop) error {
	lp.Post(func() {
		after := func(v string, d time.Duration) *promise.Promise[string] {
			def := promise.NewDeferred[string](lp)
			lp.SetTimeout(func() { def.Resolve(v) }, d)
			return def.Promise()
		}
		failAfter := func(msg string, d time.Duration) *promise.Promise[string] {
			def := promise.NewDeferred[string](lp)
			lp.SetTimeout(func() { def.Reject(errors.New(msg)) }, d)
			return def.Promise()
		}

		t.Section("all")
		promise.All(lp, after("a", 30*time.Millisecond), after("b", 10*time.Millisecond), after("c", 20*time.Millisecond)).
			Done(func(vs []string) { t.Printf("all resolved in input order: %v", vs) }, nil)

		t.Section("race")
		promise.Race(lp, after("slow", 40*time.Millisecond), after("quick", 5*time.Millisecond)).
			Done(func(v string) { t.Printf("race won by %q", v) }, nil)

		t.Section("any")
		promise.Any(lp, failAfter("first failed", 5*time.Millisecond), after("recovered", 15*time.Millisecond)).
			Done(func(v string) { t.Printf("any resolved with %q despite an earlier rejection", v) }, nil)

		t.Section("allSettled")
		promise.AllSettled(lp, after("ok", 10*time.Millisecond), failAfter("bad", 20*time.Millisecond)).
			Done(func(ss []promise.Settlement[string]) {
				for i, s := range ss {
					if s.Status == promise.Fulfilled {
						t.Printf("settled[%d]: fulfilled %q", i, s.Value)
					} else {
						t.Printf("settled[%d]: rejected %v", i, s.Reason)
					}
				}
			}, nil)

		lp.SetTimeout(func() {
			t.Printf("takeaway: All fails fast, AllSettled always waits, Any ignores losers")
		}, 50*time.Millisecond)
	})
	return nil
}

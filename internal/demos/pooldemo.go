package demos

import (
	"fmt"
	"time"

	"github.com/suryaravikumar-space/loopkit/internal/loop"
	"github.com/suryaravikumar-space/loopkit/internal/pool"
	"github.com/suryaravikumar-space/loopkit/internal/promise"
)

func runSerialQueue(t *Transcript, lp *loop.Loop) error {
	lp.Post(func() {
		q := pool.NewSerialQueue[string](lp)

		task := func(name string, d time.Duration, fail bool) pool.Thunk[string] {
			return func() *promise.Promise[string] {
				t.Printf("start %s at %v", name, lp.Now())
				def := promise.NewDeferred[string](lp)
				lp.SetTimeout(func() {
					if fail {
						def.Reject(fmt.Errorf("%s broke", name))
						return
					}
					def.Resolve(name)
				}, d)
				return def.Promise()
			}
		}

		q.Add(task("one", 30*time.Millisecond, false)).
			Done(func(v string) { t.Printf("done %s", v) }, nil)
		q.Add(task("two", 10*time.Millisecond, true)).
			Done(nil, func(err error) { t.Printf("failed: %v", err) })
		q.Add(task("three", 20*time.Millisecond, false)).
			Done(func(v string) {
				t.Printf("done %s", v)
				t.Printf("takeaway: serial means one in flight; a failure settles its promise and the queue moves on")
			}, nil)
	})
	return nil
}

func runAsyncPool(t *Transcript, lp *loop.Loop) error {
	lp.Post(func() {
		delays := []time.Duration{
			50 * time.Millisecond,
			10 * time.Millisecond,
			40 * time.Millisecond,
			20 * time.Millisecond,
			30 * time.Millisecond,
		}
		var thunks []pool.Thunk[string]
		for i, d := range delays {
			i, d := i, d
			thunks = append(thunks, func() *promise.Promise[string] {
				t.Printf("start task %d at %v", i, lp.Now())
				def := promise.NewDeferred[string](lp)
				lp.SetTimeout(func() {
					t.Printf("finish task %d at %v", i, lp.Now())
					def.Resolve(fmt.Sprintf("result-%d", i))
				}, d)
				return def.Promise()
			})
		}

		pool.All(lp, 2, thunks, nil).Done(func(vs []string) {
			t.Printf("results in input order: %v", vs)
			t.Printf("takeaway: bounded concurrency changes when work runs, never where its result lands")
		}, func(err error) {
			t.Printf("pool failed: %v", err)
		})
	})
	return nil
}

package demos

import (
	"errors"
	"time"

	"github.com/suryaravikumar-space/loopkit/internal/loop"
	"github.com/suryaravikumar-space/loopkit/internal/memo"
	"github.com/suryaravikumar-space/loopkit/internal/promise"
)

func runMemoize(t *Transcript, lp *loop.Loop) error {
	lp.Post(func() {
		t.Section("sync memoization")
		square := memo.Memoize(func(n int) int {
			t.Printf("computing %d^2", n)
			return n * n
		})
		t.Printf("square(4) = %d", square.Call(4))
		t.Printf("square(4) = %d", square.Call(4))
		t.Printf("square(5) = %d", square.Call(5))
		stats := square.Stats()
		t.Printf("hits=%d misses=%d", stats.Hits, stats.Misses)

		t.Section("async dedup")
		attempts := 0
		fetch := memo.MemoizeAsync(lp, func(key string) *promise.Promise[string] {
			attempts++
			t.Printf("fetch #%d for key %q", attempts, key)
			d := promise.NewDeferred[string](lp)
			lp.SetTimeout(func() {
				if attempts == 1 {
					d.Reject(errors.New("transient failure"))
					return
				}
				d.Resolve("payload")
			}, 20*time.Millisecond)
			return d.Promise()
		})

		// Two calls before settlement share one in-flight fetch.
		fetch.Call("user").Done(nil, func(err error) { t.Printf("caller 1: %v", err) })
		fetch.Call("user").Done(nil, func(err error) {
			t.Printf("caller 2: %v", err)
			// The rejected promise was evicted, so this retry refetches.
			fetch.Call("user").Done(func(v string) {
				t.Printf("retry got %q", v)
				t.Printf("takeaway: cache the promise to dedup, evict on rejection to allow retries")
			}, nil)
		})
	})
	return nil
}

func runLRUCache(t *Transcript, lp *loop.Loop) error {
	lp.Post(func() {
		c := memo.NewBoundedCache[string, int](3)
		put := func(k string, v int) {
			if evicted, ok := c.Put(k, v); ok {
				t.Printf("put %s evicted %s", k, evicted)
			} else {
				t.Printf("put %s", k)
			}
		}

		put("a", 1)
		put("b", 2)
		put("c", 3)
		t.Printf("keys (most recent first): %v", c.Keys())

		if _, ok := c.Get("a"); ok {
			t.Printf("get a refreshes its recency")
		}
		put("d", 4)
		t.Printf("keys (most recent first): %v", c.Keys())

		t.Printf("takeaway: every Get and Put refreshes recency; the least recently used entry pays for it")
	})
	return nil
}

func runSelector(t *Transcript, lp *loop.Loop) error {
	type state struct {
		items []string
		theme string
	}

	lp.Post(func() {
		sel := memo.NewSelector(
			func(s state) int { return len(s.items) },
			func(n int) string {
				t.Printf("recomputing summary for %d item(s)", n)
				if n == 1 {
					return "1 item"
				}
				return "several items"
			},
		)

		s := state{items: []string{"milk", "eggs"}, theme: "dark"}
		t.Printf("select: %s", sel.Select(s))
		s.theme = "light"
		t.Printf("select after theme change: %s", sel.Select(s))
		s.items = append(s.items, "bread")
		t.Printf("select after adding an item: %s", sel.Select(s))
		t.Printf("recomputations: %d", sel.Recomputations())

		t.Printf("takeaway: memoize against extracted inputs, not against the whole state")
	})
	return nil
}

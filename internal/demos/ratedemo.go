package demos

import (
	"time"

	"github.com/suryaravikumar-space/loopkit/internal/loop"
	"github.com/suryaravikumar-space/loopkit/internal/rate"
)

func runDebounce(t *Transcript, lp *loop.Loop) error {
	lp.Post(func() {
		t.Section("burst collapses to trailing call")
		save := rate.Debounce(lp, func(arg string) {
			t.Printf("debounce: fired with arg=%s at %v", arg, lp.Now())
		}, 100*time.Millisecond)

		call := func(arg string, at time.Duration) {
			lp.SetTimeout(func() {
				t.Printf("call %s at %v", arg, lp.Now())
				save.Call(arg)
			}, at)
		}
		call("a", 0)
		call("b", 30*time.Millisecond)
		call("c", 60*time.Millisecond)

		lp.SetTimeout(func() {
			t.Section("cancel")
			save.Call("d")
			save.Cancel()
			t.Printf("call d cancelled, pending=%v", save.Pending())
		}, 200*time.Millisecond)

		lp.SetTimeout(func() {
			t.Section("flush")
			save.Call("e")
			save.Flush()
			t.Printf("takeaway: only the quiet period after the last call lets the trailing edge fire")
		}, 250*time.Millisecond)
	})
	return nil
}

func runThrottle(t *Transcript, lp *loop.Loop) error {
	lp.Post(func() {
		emit := rate.Throttle(lp, func(arg string) {
			t.Printf("throttle: fired with arg=%s at %v", arg, lp.Now())
		}, 100*time.Millisecond)

		call := func(arg string, at time.Duration) {
			lp.SetTimeout(func() {
				t.Printf("call %s at %v", arg, lp.Now())
				emit.Call(arg)
			}, at)
		}
		// A burst inside one window, then a lone call after it closes.
		call("a", 0)
		call("b", 20*time.Millisecond)
		call("c", 40*time.Millisecond)
		call("d", 250*time.Millisecond)

		lp.SetTimeout(func() {
			t.Printf("takeaway: leading edge fires immediately, the trailing edge replays the last swallowed argument")
		}, 500*time.Millisecond)
	})
	return nil
}

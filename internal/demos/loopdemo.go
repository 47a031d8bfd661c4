package demos

import (
	"errors"
	"time"

	"github.com/suryaravikumar-space/loopkit/internal/loop"
)

func runTasksVsMicrotasks(t *Transcript, lp *loop.Loop) error {
	lp.Post(func() {
		t.Printf("sync: start")

		lp.SetTimeout(func() {
			t.Printf("timeout: fires last, even at 0ms")
			t.Printf("takeaway: the microtask queue drains fully before the next macrotask or timer")
		}, 0)

		lp.QueueMicrotask(func() {
			t.Printf("microtask: fires before any timer")
			lp.QueueMicrotask(func() {
				t.Printf("microtask: nested, still before the timer")
			})
		})

		t.Printf("sync: end")
	})
	return nil
}

func runTimers(t *Transcript, lp *loop.Loop) error {
	lp.Post(func() {
		t.Section("same deadline, creation order")
		lp.SetTimeout(func() { t.Printf("timer A at %v", lp.Now()) }, 20*time.Millisecond)
		lp.SetTimeout(func() { t.Printf("timer B at %v", lp.Now()) }, 20*time.Millisecond)
		lp.SetTimeout(func() { t.Printf("timer C at %v", lp.Now()) }, 10*time.Millisecond)

		t.Section("interval")
		ticks := 0
		var tick loop.TimerHandle
		tick = lp.SetInterval(func() {
			ticks++
			t.Printf("tick %d at %v", ticks, lp.Now())
			if ticks == 3 {
				lp.ClearTimer(tick)
				t.Printf("interval cleared")
			}
		}, 25*time.Millisecond)

		t.Section("abort")
		ctrl := loop.NewAbortController()
		doomed := lp.SetTimeout(func() { t.Printf("doomed timer fired") }, 200*time.Millisecond)
		ctrl.Signal().OnAbort(func(reason error) {
			lp.ClearTimer(doomed)
			t.Printf("timer aborted: %v", reason)
		})
		lp.SetTimeout(func() {
			ctrl.Abort(errors.New("no longer needed"))
		}, 90*time.Millisecond)

		lp.SetTimeout(func() {
			t.Printf("takeaway: timers order by deadline, then by creation; cleared timers never fire")
		}, 100*time.Millisecond)
	})
	return nil
}

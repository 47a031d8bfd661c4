package demos

import (
	"github.com/suryaravikumar-space/loopkit/internal/emitter"
	"github.com/suryaravikumar-space/loopkit/internal/loop"
)

func runEmitter(t *Transcript, lp *loop.Loop) error {
	lp.Post(func() {
		em := emitter.New()

		t.Section("registration order")
		em.On("greet", func(payload any) { t.Printf("listener 1 got %v", payload) })
		offSecond := em.On("greet", func(payload any) { t.Printf("listener 2 got %v", payload) })
		em.Emit("greet", "hello")

		t.Section("off")
		offSecond()
		offSecond() // safe to call again
		t.Printf("emit reached %d listener(s)", em.Emit("greet", "again"))

		t.Section("once")
		em.Once("boot", func(any) { t.Printf("boot listener ran") })
		t.Printf("boot emit 1 reached %d", em.Emit("boot", nil))
		t.Printf("boot emit 2 reached %d", em.Emit("boot", nil))

		t.Section("snapshot during emit")
		em.On("tick", func(any) {
			t.Printf("existing listener; registering another mid-emit")
			em.On("tick", func(any) { t.Printf("late listener ran") })
		})
		t.Printf("tick emit 1 reached %d", em.Emit("tick", nil))
		t.Printf("tick emit 2 reached %d", em.Emit("tick", nil))

		t.Printf("takeaway: Emit walks a snapshot, so mid-emit changes apply from the next emit on")
	})
	return nil
}

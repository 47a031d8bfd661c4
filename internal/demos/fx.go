package demos

import (
	"strings"

	"github.com/suryaravikumar-space/loopkit/internal/fx"
	"github.com/suryaravikumar-space/loopkit/internal/loop"
)

// counter is the JS closure-counter pattern with the captured variable
// promoted to a struct field.
type counter struct {
	n int
}

func (c *counter) increment() int {
	c.n++
	return c.n
}

func runClosureCounter(t *Transcript, lp *loop.Loop) error {
	lp.Post(func() {
		a := &counter{}
		b := &counter{}

		t.Printf("counter a: %d", a.increment())
		t.Printf("counter a: %d", a.increment())
		t.Printf("counter b: %d", b.increment())
		t.Printf("counter a: %d", a.increment())
		t.Printf("counter b: %d", b.increment())

		t.Printf("takeaway: each instance owns its state, like each call to a closure factory")
	})
	return nil
}

func runCurry(t *Transcript, lp *loop.Loop) error {
	lp.Post(func() {
		add := func(a, b int) int { return a + b }

		t.Section("curry")
		add5 := fx.Curry2(add)(5)
		t.Printf("add(5, 3) = %d", add(5, 3))
		t.Printf("curry2(add)(5)(3) = %d", fx.Curry2(add)(5)(3))
		t.Printf("add5(10) = %d", add5(10))

		t.Section("partial")
		exclaim := fx.Partial1(func(suffix, s string) string { return s + suffix }, "!")
		t.Printf("exclaim(%q) = %q", "go", exclaim("go"))

		t.Section("compose and pipe")
		double := func(n int) int { return n * 2 }
		inc := func(n int) int { return n + 1 }
		t.Printf("compose(double, inc)(3) = %d", fx.Compose2(double, inc)(3))
		t.Printf("pipe(double, inc)(3) = %d", fx.Pipe2(double, inc)(3))

		shout := fx.PipeAll(strings.TrimSpace, strings.ToUpper)
		t.Printf("pipeAll(trim, upper)(%q) = %q", " quiet ", shout(" quiet "))

		t.Printf("takeaway: compose applies right to left, pipe left to right")
	})
	return nil
}

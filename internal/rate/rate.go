// Package rate implements debounce and throttle wrappers on loop timers.
//
// Debounce delays invocation until a quiet period of wait has elapsed
// since the last call: a burst of calls collapses into one trailing
// invocation carrying the burst's final argument. Throttle caps frequency
// to one invocation per limit window, invoking on the leading edge and
// once more on the trailing edge with the last argument the window
// swallowed.
//
// The source snippets keep this state in closures; here it lives in
// explicit struct fields, which also gives the wrappers inspectable
// Cancel/Flush/Pending methods.
//
// Both wrappers are loop-goroutine only, like the timers they schedule.
package rate

type config struct {
	leading  bool
	trailing bool
}

// Option configures a Debounced or Throttled wrapper.
type Option func(*config)

// WithLeading enables invocation on the leading edge of a burst or
// window. Debounce defaults to trailing-only; throttle enables leading
// by default.
func WithLeading() Option {
	return func(c *config) { c.leading = true }
}

// WithoutLeading disables the leading-edge invocation.
func WithoutLeading() Option {
	return func(c *config) { c.leading = false }
}

// WithoutTrailing disables the trailing-edge invocation.
func WithoutTrailing() Option {
	return func(c *config) { c.trailing = false }
}

package loop

import "errors"

// ErrAborted is the default abort reason.
var ErrAborted = errors.New("loop: aborted")

// AbortController owns an AbortSignal and is the only way to abort it.
// Hand the Signal to the operation, keep the controller.
//
// Loop goroutine only, like the timers it usually cancels.
type AbortController struct {
	signal AbortSignal
}

// NewAbortController creates a controller with a fresh, unaborted signal.
func NewAbortController() *AbortController {
	return &AbortController{}
}

// Signal returns the controller's signal.
func (c *AbortController) Signal() *AbortSignal {
	return &c.signal
}

// Abort aborts the signal with the given reason and runs registered
// callbacks in registration order. A nil reason becomes ErrAborted.
// Abort is idempotent: only the first call has any effect.
func (c *AbortController) Abort(reason error) {
	s := &c.signal
	if s.aborted {
		return
	}
	if reason == nil {
		reason = ErrAborted
	}
	s.aborted = true
	s.reason = reason

	callbacks := s.callbacks
	s.callbacks = nil
	for _, cb := range callbacks {
		if cb != nil {
			cb(reason)
		}
	}
}

// AbortSignal reports whether an operation has been aborted and why.
type AbortSignal struct {
	aborted   bool
	reason    error
	callbacks []func(error)
}

// Aborted reports whether Abort has been called.
func (s *AbortSignal) Aborted() bool {
	return s != nil && s.aborted
}

// Reason returns the abort reason, or nil while unaborted.
func (s *AbortSignal) Reason() error {
	if s == nil {
		return nil
	}
	return s.reason
}

// OnAbort registers fn to run when the signal aborts. If the signal is
// already aborted, fn runs immediately. The returned func unregisters fn;
// calling it after the signal fired is a no-op.
func (s *AbortSignal) OnAbort(fn func(reason error)) (off func()) {
	if fn == nil {
		return func() {}
	}
	if s.aborted {
		fn(s.reason)
		return func() {}
	}
	s.callbacks = append(s.callbacks, fn)
	i := len(s.callbacks) - 1
	return func() {
		if i < len(s.callbacks) {
			s.callbacks[i] = nil
		}
	}
}

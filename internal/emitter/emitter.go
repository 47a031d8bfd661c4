// Package emitter implements a minimal event emitter with deterministic
// listener ordering.
//
// Listeners for an event run in registration order. Emit dispatches to a
// snapshot of the listener list, so handlers that subscribe or unsubscribe
// during a dispatch affect only the next Emit. A Once listener is removed
// before its first invocation, which keeps re-entrant Emits from running
// it twice.
//
// The emitter is not safe for concurrent use; like the rest of loopkit it
// belongs to a single goroutine, usually the event loop's.
package emitter

// Listener receives an event payload.
type Listener func(payload any)

type registration struct {
	id   int64
	fn   Listener
	once bool
}

// Emitter dispatches named events to registered listeners.
type Emitter struct {
	listeners map[string][]registration
	lastID    int64
}

// New creates an empty emitter.
func New() *Emitter {
	return &Emitter{listeners: make(map[string][]registration)}
}

// On registers fn for event and returns an unsubscribe func.
// Calling the unsubscribe func more than once is a no-op.
func (e *Emitter) On(event string, fn Listener) (off func()) {
	return e.register(event, fn, false)
}

// Once registers fn to run for at most one dispatch of event.
// The returned func unsubscribes early.
func (e *Emitter) Once(event string, fn Listener) (off func()) {
	return e.register(event, fn, true)
}

func (e *Emitter) register(event string, fn Listener, once bool) func() {
	if fn == nil {
		panic("emitter: nil listener")
	}
	e.lastID++
	id := e.lastID
	e.listeners[event] = append(e.listeners[event], registration{id: id, fn: fn, once: once})
	return func() { e.remove(event, id) }
}

func (e *Emitter) remove(event string, id int64) {
	regs := e.listeners[event]
	for i, r := range regs {
		if r.id == id {
			e.listeners[event] = append(regs[:i:i], regs[i+1:]...)
			if len(e.listeners[event]) == 0 {
				delete(e.listeners, event)
			}
			return
		}
	}
}

// Emit dispatches payload to every listener registered for event, in
// registration order, and returns the number of listeners notified.
//
// The dispatch uses a snapshot: listeners added during Emit run from the
// next Emit on, and listeners removed during Emit still run in this one.
// Once listeners are deregistered before they are invoked.
func (e *Emitter) Emit(event string, payload any) int {
	regs := e.listeners[event]
	if len(regs) == 0 {
		return 0
	}

	snapshot := make([]registration, len(regs))
	copy(snapshot, regs)

	for _, r := range snapshot {
		if r.once {
			e.remove(event, r.id)
		}
		r.fn(payload)
	}
	return len(snapshot)
}

// ListenerCount returns the number of listeners registered for event.
func (e *Emitter) ListenerCount(event string) int {
	return len(e.listeners[event])
}

// EventNames returns the events that currently have listeners.
// Order is unspecified.
func (e *Emitter) EventNames() []string {
	names := make([]string, 0, len(e.listeners))
	for name := range e.listeners {
		names = append(names, name)
	}
	return names
}

// RemoveAllListeners drops every listener for event, or every listener
// for every event when called with the empty string.
func (e *Emitter) RemoveAllListeners(event string) {
	if event == "" {
		e.listeners = make(map[string][]registration)
		return
	}
	delete(e.listeners, event)
}

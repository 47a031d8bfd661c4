package loop

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"
)

// ErrAlreadyRunning is returned by Run when the loop is already running.
var ErrAlreadyRunning = errors.New("loop: Run called twice")

// Loop is the single-writer event loop.
//
// Thread-safety model:
//   - Post(): safe from any goroutine
//   - Run(): must be called from exactly one goroutine
//   - Everything else (QueueMicrotask, SetTimeout, SetInterval, ClearTimer):
//     loop goroutine only, i.e. from inside a task
//
// INVARIANTS:
//   - Macrotasks execute in FIFO order
//   - Microtasks drain to empty after every macrotask and timer firing
//   - Timers fire by (deadline, seq); ordering never uses wall-clock reads
type Loop struct {
	queue      *taskQueue
	micro      []task
	timers     timerHeap
	timersByID map[TimerHandle]*timer
	lastHandle TimerHandle
	clock      Clock
	seq        *SeqClock
	quota      stepQuota
	keepAlive  bool
	running    atomic.Bool
}

// Option configures a Loop.
type Option func(*Loop)

// WithClock sets the time source. Default: NewVirtualClock().
func WithClock(c Clock) Option {
	return func(l *Loop) {
		l.clock = c
	}
}

// WithMaxSteps sets the step quota per Run.
//
// Default: 100000 steps (DefaultMaxSteps)
// Use WithMaxSteps(50) in tests to exercise quota termination.
func WithMaxSteps(maxSteps int) Option {
	return func(l *Loop) {
		l.quota.maxSteps = maxSteps
	}
}

// WithKeepAlive keeps Run blocked when the loop goes idle, waiting for
// more Post calls, instead of returning at quiescence. Cancel the context
// or call Stop to end a kept-alive Run.
func WithKeepAlive() Option {
	return func(l *Loop) {
		l.keepAlive = true
	}
}

// New creates a Loop. By default it uses a VirtualClock and exits Run when
// fully idle, which is the behavior of a script: the process ends when no
// work remains.
func New(opts ...Option) *Loop {
	l := &Loop{
		queue:      newTaskQueue(),
		timersByID: make(map[TimerHandle]*timer),
		clock:      NewVirtualClock(),
		seq:        NewSeqClock(),
		quota:      stepQuota{maxSteps: DefaultMaxSteps},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Post enqueues a macrotask.
// Thread-safe: may be called from any goroutine.
//
// Returns false if the loop has been stopped.
func (l *Loop) Post(fn func()) bool {
	return l.PostNamed("task", fn)
}

// PostNamed enqueues a macrotask with a label used in panic logs.
func (l *Loop) PostNamed(label string, fn func()) bool {
	if fn == nil {
		panic("loop: nil task")
	}
	return l.queue.Enqueue(task{fn: fn, label: label, seq: l.seq.Next()})
}

// QueueMicrotask schedules fn to run before the next macrotask or timer,
// after the currently running task finishes. Microtasks run in FIFO order.
//
// Must be called on the loop goroutine.
func (l *Loop) QueueMicrotask(fn func()) {
	if fn == nil {
		panic("loop: nil microtask")
	}
	l.micro = append(l.micro, task{fn: fn, label: "microtask", seq: l.seq.Next()})
}

// Now returns the loop's current time.
func (l *Loop) Now() time.Duration {
	return l.clock.Now()
}

// Seq returns the loop's logical clock.
func (l *Loop) Seq() *SeqClock {
	return l.seq
}

// PendingTimers returns the number of scheduled timers.
// Useful for tests and diagnostics.
func (l *Loop) PendingTimers() int {
	return len(l.timers)
}

// QueueLen returns the number of pending macrotasks.
// Useful for tests and diagnostics.
func (l *Loop) QueueLen() int {
	return l.queue.Len()
}

// Stop closes the task queue. Run drains what is already scheduled and
// then returns. Further Post calls return false.
func (l *Loop) Stop() {
	l.queue.Close()
}

// Run executes the loop until quiescence (no macrotasks, no microtasks,
// no timers), until ctx is cancelled, or until the step quota is exceeded.
// With WithKeepAlive, an idle loop waits for more Post calls instead of
// returning.
//
// Must be called from exactly ONE goroutine. All task execution, timer
// firing and microtask draining happen on this goroutine.
//
// ERROR HANDLING: a panicking task is recovered and logged with its label
// and seq, and the loop continues. Retries would make replay
// non-deterministic, so there are none.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer l.running.Store(false)

	slog.Debug("loop starting")

	for {
		// Microtasks drain before anything else runs. This also covers
		// microtasks queued before Run started, and promises settled
		// during setup.
		if err := l.drainMicrotasks(); err != nil {
			return err
		}

		// Macrotasks next, in FIFO order.
		if t, ok := l.queue.TryDequeue(); ok {
			if err := l.quota.step(); err != nil {
				return err
			}
			l.exec(t)
			continue
		}

		// Stop is definitive: once the queue is closed and drained, the
		// run ends and pending timers are discarded.
		if l.queue.Closed() {
			slog.Debug("loop stopping: queue closed")
			return nil
		}

		// Due timers, earliest (deadline, seq) first.
		if l.hasDueTimer() {
			if err := l.quota.step(); err != nil {
				return err
			}
			l.fireDueTimer()
			continue
		}

		// Nothing runnable. If timers are pending, move time forward:
		// jump a virtual clock, sleep a wall clock.
		if deadline, ok := l.nextDeadline(); ok {
			if adv, virtual := l.clock.(advancer); virtual {
				adv.advanceTo(deadline)
				continue
			}

			wait := deadline - l.clock.Now()
			if wait < 0 {
				wait = 0
			}
			tm := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				tm.Stop()
				slog.Debug("loop stopping: context cancelled")
				l.queue.Close()
				return ctx.Err()
			case <-tm.C:
			case <-l.queue.Wait():
				tm.Stop()
			}
			continue
		}

		// Fully idle: no macrotasks, no microtasks, no timers.
		if !l.keepAlive {
			if l.queue.Len() > 0 {
				continue // a Post landed after TryDequeue
			}
			slog.Debug("loop idle, stopping")
			return nil
		}

		select {
		case <-ctx.Done():
			slog.Debug("loop stopping: context cancelled")
			l.queue.Close()
			return ctx.Err()
		case <-l.queue.Wait():
			// Signal received - loop back to TryDequeue. The signal
			// channel closes when the queue is closed, which makes this
			// case fire immediately and the next iteration return.
		}
	}
}

func (l *Loop) hasDueTimer() bool {
	return len(l.timers) > 0 && l.timers[0].deadline <= l.clock.Now()
}

// drainMicrotasks runs queued microtasks until none remain. Microtasks
// queued by microtasks run in the same drain.
func (l *Loop) drainMicrotasks() error {
	for len(l.micro) > 0 {
		t := l.micro[0]
		l.micro[0] = task{}
		if len(l.micro) == 1 {
			l.micro = l.micro[:0]
		} else {
			l.micro = l.micro[1:]
		}

		if err := l.quota.step(); err != nil {
			return err
		}
		l.exec(t)
	}
	return nil
}

// exec runs one task with the log-and-continue panic policy.
func (l *Loop) exec(t task) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("task panicked",
				"label", t.label,
				"seq", t.seq,
				"panic", r,
			)
		}
	}()
	t.fn()
}

// Package loop implements the loopkit event loop runtime.
//
// The loop is the shared substrate every loopkit primitive runs on: timers,
// promises, debounce/throttle wrappers, serial queues and bounded pools all
// schedule work here instead of spawning goroutines.
//
// ARCHITECTURE:
//
// Single-Writer Run Loop:
// The loop processes all tasks in a single goroutine for deterministic
// behavior. This ensures:
// - Run-to-completion: a task is never preempted by another task
// - Reproducible transcripts for golden-file comparison
// - Simple reasoning about ordering and causality
//
// Task Processing Flow:
// 1. Macrotasks enqueued to a FIFO queue (Post is safe from any goroutine)
// 2. Run() dequeues and executes macrotasks one at a time
// 3. After every macrotask, the microtask queue drains to empty
// 4. When both queues are empty, due timers fire (earliest deadline first),
//    each followed by a full microtask drain
// 5. With a VirtualClock, the loop jumps time forward to the next deadline
//    instead of sleeping, so timer demos run instantly and identically
//
// Ordering rules:
// - Macrotasks run in FIFO order
// - Timers fire ordered by (deadline, scheduling seq); ties in deadline
//   resolve to scheduling order
// - Microtasks always drain completely before the next macrotask or timer
//
// All tasks and timers are stamped with a monotonic seq counter from
// SeqClock. Ordering never depends on wall-clock time.
//
// Error policy: a panicking task is recovered, logged with its label and
// seq, and the loop continues. Retrying would break determinism, so there
// are no retries.
//
// A step quota bounds the total number of tasks, microtasks and timer
// firings a single Run may execute. A demo that schedules forever (for
// example an interval that is never cleared) terminates with
// StepsExceededError instead of hanging.
package loop

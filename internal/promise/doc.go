// Package promise implements deferreds and promise combinators on top of
// the loopkit event loop.
//
// A Promise settles exactly once, to Fulfilled or Rejected. Settlement
// callbacks never run synchronously: they are queued as microtasks, so an
// already-settled promise still notifies its subscribers only after the
// current task finishes. This is the rule that keeps callback ordering
// independent of whether a result was already available ("don't release
// Zalgo").
//
// Go has no method-level type parameters, so transforming chains use free
// functions: Then, ThenPromise, Catch, Finally. Subscribing without
// transforming uses the Done method.
//
// A rejection that still has no handler once its settlement microtasks
// drain is reported through slog, mirroring the unhandled-rejection
// warning of the source environment.
//
// All promise operations are loop-goroutine only. To resolve a deferred
// from another goroutine, Post a task that resolves it.
package promise

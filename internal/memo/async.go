package memo

import (
	"github.com/suryaravikumar-space/loopkit/internal/loop"
	"github.com/suryaravikumar-space/loopkit/internal/promise"
)

// AsyncMemoized caches promises by key. Because the promise is stored
// before it settles, concurrent callers for the same key share a single
// in-flight computation instead of racing duplicate work.
type AsyncMemoized[K comparable, V any] struct {
	lp    *loop.Loop
	fn    func(K) *promise.Promise[V]
	cache map[K]*promise.Promise[V]
	stats Stats
}

// MemoizeAsync wraps a promise-returning fn with a per-key promise cache.
func MemoizeAsync[K comparable, V any](lp *loop.Loop, fn func(K) *promise.Promise[V]) *AsyncMemoized[K, V] {
	if fn == nil {
		panic("memo: nil function")
	}
	return &AsyncMemoized[K, V]{lp: lp, fn: fn, cache: make(map[K]*promise.Promise[V])}
}

// Call returns the cached promise for k, starting the computation on the
// first call. A rejected promise is evicted when it settles, so the next
// Call for that key retries rather than replaying the cached failure.
func (m *AsyncMemoized[K, V]) Call(k K) *promise.Promise[V] {
	if p, ok := m.cache[k]; ok {
		m.stats.Hits++
		return p
	}
	m.stats.Misses++
	p := m.fn(k)
	m.cache[k] = p
	p.Done(nil, func(error) {
		// Evict only if the slot still holds this promise; a Forget
		// plus re-Call may have replaced it in the meantime.
		if m.cache[k] == p {
			delete(m.cache, k)
		}
	})
	return p
}

// Stats returns the hit and miss counts so far.
func (m *AsyncMemoized[K, V]) Stats() Stats {
	return m.stats
}

// Forget drops the cached promise for k, if any.
func (m *AsyncMemoized[K, V]) Forget(k K) {
	delete(m.cache, k)
}

// Len returns the number of cached promises, settled or in flight.
func (m *AsyncMemoized[K, V]) Len() int {
	return len(m.cache)
}

// Package memo implements memoization helpers and a bounded LRU cache.
//
// Memoize caches by comparable key in an unbounded map, MemoizeAsync
// caches the in-flight promise so concurrent callers share one
// computation, and BoundedCache caps memory with least-recently-used
// eviction. Selector and Selector2 memoize a derived value against its
// extracted inputs, recomputing only when an input changes under ==.
//
// None of these types lock. Memoize and BoundedCache belong to whatever
// single goroutine owns them; MemoizeAsync and the selectors are
// loop-goroutine only like the promises they hand out.
package memo

// Stats counts cache lookups for a Memoized function.
type Stats struct {
	Hits   int
	Misses int
}

// Memoized caches results of a single-argument function by key.
type Memoized[K comparable, V any] struct {
	fn    func(K) V
	cache map[K]V
	stats Stats
}

// Memoize wraps fn with an unbounded per-key result cache.
func Memoize[K comparable, V any](fn func(K) V) *Memoized[K, V] {
	if fn == nil {
		panic("memo: nil function")
	}
	return &Memoized[K, V]{fn: fn, cache: make(map[K]V)}
}

// Call returns the cached result for k, computing and storing it on the
// first call.
func (m *Memoized[K, V]) Call(k K) V {
	if v, ok := m.cache[k]; ok {
		m.stats.Hits++
		return v
	}
	m.stats.Misses++
	v := m.fn(k)
	m.cache[k] = v
	return v
}

// Stats returns the hit and miss counts so far.
func (m *Memoized[K, V]) Stats() Stats {
	return m.stats
}

// Forget drops the cached result for k, if any.
func (m *Memoized[K, V]) Forget(k K) {
	delete(m.cache, k)
}

// Reset clears the cache and the counters.
func (m *Memoized[K, V]) Reset() {
	m.cache = make(map[K]V)
	m.stats = Stats{}
}

// Len returns the number of cached entries.
func (m *Memoized[K, V]) Len() int {
	return len(m.cache)
}

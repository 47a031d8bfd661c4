package memo

import "container/list"

type lruEntry[K comparable, V any] struct {
	key K
	val V
}

// BoundedCache is a fixed-capacity cache with least-recently-used
// eviction. Get and Put both count as a use.
type BoundedCache[K comparable, V any] struct {
	capacity int
	order    *list.List // front is most recently used
	index    map[K]*list.Element
}

// NewBoundedCache returns an empty cache holding at most capacity
// entries. Capacity must be positive.
func NewBoundedCache[K comparable, V any](capacity int) *BoundedCache[K, V] {
	if capacity <= 0 {
		panic("memo: cache capacity must be positive")
	}
	return &BoundedCache[K, V]{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[K]*list.Element),
	}
}

// Get returns the value for k and refreshes its recency.
func (c *BoundedCache[K, V]) Get(k K) (V, bool) {
	if el, ok := c.index[k]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*lruEntry[K, V]).val, true
	}
	var zero V
	return zero, false
}

// Peek returns the value for k without touching recency.
func (c *BoundedCache[K, V]) Peek(k K) (V, bool) {
	if el, ok := c.index[k]; ok {
		return el.Value.(*lruEntry[K, V]).val, true
	}
	var zero V
	return zero, false
}

// Put stores v under k, evicting the least recently used entry when the
// cache is full. It returns the evicted key, if any.
func (c *BoundedCache[K, V]) Put(k K, v V) (evicted K, didEvict bool) {
	if el, ok := c.index[k]; ok {
		el.Value.(*lruEntry[K, V]).val = v
		c.order.MoveToFront(el)
		return evicted, false
	}
	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		entry := oldest.Value.(*lruEntry[K, V])
		c.order.Remove(oldest)
		delete(c.index, entry.key)
		evicted, didEvict = entry.key, true
	}
	c.index[k] = c.order.PushFront(&lruEntry[K, V]{key: k, val: v})
	return evicted, didEvict
}

// Remove deletes k from the cache.
func (c *BoundedCache[K, V]) Remove(k K) bool {
	el, ok := c.index[k]
	if !ok {
		return false
	}
	c.order.Remove(el)
	delete(c.index, k)
	return true
}

// Len returns the number of entries in the cache.
func (c *BoundedCache[K, V]) Len() int {
	return c.order.Len()
}

// Cap returns the cache capacity.
func (c *BoundedCache[K, V]) Cap() int {
	return c.capacity
}

// Keys returns the keys from most to least recently used.
func (c *BoundedCache[K, V]) Keys() []K {
	keys := make([]K, 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*lruEntry[K, V]).key)
	}
	return keys
}

// Package childrencache implements the bounded children-array cache
// described in spec.md §4.2: a fixed-capacity LRU over a directory node's
// readdir results, whose eviction callback invalidates the owning node's
// READDIR_CALLED bit so that a subsequent readdir is forced to re-list
// rather than silently serving a stale (or nil) children list. It is
// grounded on the teacher's pkg/filesystem/watching/watch_non_recursive_linux.go,
// which uses the identical groupcache lru.Cache + OnEvicted pattern to bound
// the number of live inotify watches.
//
// Capacity is accounted in spec.md §4.2 "list-size units" (a child list of
// length N costs N+1, not 1), not in number of cached directories: the
// underlying lru.Cache is kept unbounded by entry count and still indexed
// directly by owner for O(1) Get, while this package tracks the cumulative
// weight of everything currently cached and, after every Set, evicts
// least-recently-used entries (via RemoveOldest) until the total falls back
// under the configured budget. A single child list heavier than the whole
// budget is therefore evicted practically as soon as it's inserted, which is
// what forces the repeated-readdir behavior spec.md §8's oversized-directory
// scenario describes.
package childrencache

import "github.com/golang/groupcache/lru"

// Key identifies the owner of a cached children list. The graph uses a
// node's identity (its pointer, boxed as an interface value) as the key.
type Key interface{}

// Cache is a weight-bounded LRU over per-directory children lists.
type Cache struct {
	inner       *lru.Cache
	capacity    int
	weights     map[Key]int
	totalWeight int
	onEvict     func(owner Key)
}

// New constructs a children cache with the given capacity, measured in the
// same weight units passed to Set. A capacity of zero means unbounded,
// matching groupcache/lru's own convention.
func New(capacity int, onEvict func(owner Key)) *Cache {
	c := &Cache{
		capacity: capacity,
		weights:  make(map[Key]int),
		onEvict:  onEvict,
	}
	inner := lru.New(0)
	inner.OnEvicted = func(key lru.Key, _ interface{}) {
		c.totalWeight -= c.weights[key]
		delete(c.weights, key)
		if c.onEvict != nil {
			c.onEvict(key)
		}
	}
	c.inner = inner
	return c
}

// Get returns the cached children-list value for owner, if present. The
// caller decides the concrete type stored (the graph stores a *childList
// holding both the node slice and the provisional split index).
func (c *Cache) Get(owner Key) (interface{}, bool) {
	return c.inner.Get(owner)
}

// Set stores (or refreshes, moving it to the front) the children-list value
// for owner, recorded at the given weight (the graph passes
// len(list.entries)+1, per spec.md §4.2). If the cache's total weight now
// exceeds capacity, the least-recently-used entries are evicted, one at a
// time, until it doesn't; an entry heavier than the whole capacity is
// itself evicted, leaving the cache empty.
func (c *Cache) Set(owner Key, value interface{}, weight int) {
	c.totalWeight += weight - c.weights[owner]
	c.weights[owner] = weight
	c.inner.Add(owner, value)

	for c.capacity > 0 && c.totalWeight > c.capacity && c.inner.Len() > 0 {
		c.inner.RemoveOldest()
	}
}

// Remove evicts owner's entry, if present, invoking the configured eviction
// callback.
func (c *Cache) Remove(owner Key) {
	c.inner.Remove(owner)
}

// Len returns the number of directories currently holding a cached children
// list.
func (c *Cache) Len() int {
	return c.inner.Len()
}

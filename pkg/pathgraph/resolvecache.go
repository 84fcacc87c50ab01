package pathgraph

import "github.com/golang/groupcache/lru"

// stringLRU is the string-keyed, string-valued LRU backing the resolver
// cache (spec.md §4.3): two instances per graph, one for native-shaped
// resolve results and one for POSIX-shaped ones. It reuses the same
// groupcache lru.Cache the children-array cache and the teacher's inotify
// watch-path cache both build on.
type stringLRU struct {
	inner *lru.Cache
}

func newStringLRU(capacity int) *stringLRU {
	return &stringLRU{inner: lru.New(capacity)}
}

func (c *stringLRU) get(key string) (string, bool) {
	if value, ok := c.inner.Get(key); ok {
		return value.(string), true
	}
	return "", false
}

func (c *stringLRU) set(key, value string) {
	c.inner.Add(key, value)
}

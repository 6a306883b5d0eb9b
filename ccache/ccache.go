// Package ccache provides a concurrent safe LRU cache of digests.
package ccache

import (
	"sync"

	"github.com/golang/groupcache/lru"

	"massnet.org/hashcore/hashutil"
)

// CCache maps keys to digests, evicting the least recently used entry
// once maxEntries is reached.
type CCache struct {
	l     sync.Mutex
	cache *lru.Cache

	hits, misses uint64
}

func NewCCache(maxEntries int) *CCache {
	return &CCache{
		cache: lru.New(maxEntries),
	}
}

func (c *CCache) Get(key lru.Key) (hashutil.Hash, bool) {
	c.l.Lock()
	defer c.l.Unlock()
	v, ok := c.cache.Get(key)
	if !ok {
		c.misses++
		return hashutil.Hash{}, false
	}
	c.hits++
	return v.(hashutil.Hash), true
}

func (c *CCache) Add(key lru.Key, h hashutil.Hash) {
	c.l.Lock()
	c.cache.Add(key, h)
	c.l.Unlock()
}

func (c *CCache) Remove(key lru.Key) {
	c.l.Lock()
	c.cache.Remove(key)
	c.l.Unlock()
}

func (c *CCache) Clear() {
	c.l.Lock()
	c.cache.Clear()
	c.l.Unlock()
}

func (c *CCache) Len() int {
	c.l.Lock()
	defer c.l.Unlock()
	return c.cache.Len()
}

// Stats returns the hit and miss counts of Get.
func (c *CCache) Stats() (hits, misses uint64) {
	c.l.Lock()
	defer c.l.Unlock()
	return c.hits, c.misses
}

func (c *CCache) SetOnEvicted(onEvicted func(key lru.Key, h hashutil.Hash)) {
	c.l.Lock()
	c.cache.OnEvicted = func(key lru.Key, value interface{}) {
		onEvicted(key, value.(hashutil.Hash))
	}
	c.l.Unlock()
}

package ccache

import (
	"sync"
	"testing"

	"github.com/golang/groupcache/lru"
	"github.com/stretchr/testify/assert"

	"massnet.org/hashcore/hashutil"
)

func TestCCacheEviction(t *testing.T) {
	c := NewCCache(2)
	var evicted []lru.Key
	c.SetOnEvicted(func(key lru.Key, h hashutil.Hash) {
		evicted = append(evicted, key)
	})

	h0 := hashutil.SHA256([]byte("0"))
	h1 := hashutil.SHA256([]byte("1"))
	h2 := hashutil.SHA256([]byte("2"))
	c.Add(uint64(0), h0)
	c.Add(uint64(1), h1)

	// touch 0 so 1 becomes the oldest
	got, ok := c.Get(uint64(0))
	assert.True(t, ok)
	assert.Equal(t, h0, got)

	c.Add(uint64(2), h2)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []lru.Key{uint64(1)}, evicted)

	_, ok = c.Get(uint64(1))
	assert.False(t, ok)
	hits, misses := c.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)

	c.Remove(uint64(2))
	assert.Equal(t, 1, c.Len())
	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestCCacheConcurrent(t *testing.T) {
	c := NewCCache(64)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				k := uint64(n*100 + j)
				c.Add(k, hashutil.SHA256([]byte{byte(j)}))
				c.Get(k)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 64, c.Len())
}

package ristretto

import (
	"time"

	"github.com/caasmo/bottrap/cache"
	"github.com/dgraph-io/ristretto/v2"
)

// Cache adapts a string-keyed ristretto cache to the cache.Cache interface.
type Cache[V any] struct {
	cache *ristretto.Cache[string, V]
}

func (rc *Cache[V]) Get(key string) (V, bool) {
	return rc.cache.Get(key)
}

func (rc *Cache[V]) Set(key string, value V, cost int64) bool {
	return rc.cache.Set(key, value, cost)
}

func (rc *Cache[V]) SetWithTTL(key string, value V, cost int64, ttl time.Duration) bool {
	return rc.cache.SetWithTTL(key, value, cost, ttl)
}

// Wait blocks until buffered writes have been applied. Sets are applied
// asynchronously; only tests need this.
func (rc *Cache[V]) Wait() {
	rc.cache.Wait()
}

func New[V any]() (cache.Cache[string, V], error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, V]{
		NumCounters: 1e6,     // number of keys to track frequency of (1M)
		MaxCost:     1 << 28, // maximum cost of cache (256MB)
		BufferItems: 64,      // number of keys per Get buffer
	})
	if err != nil {
		return nil, err
	}

	return &Cache[V]{cache: c}, nil
}

// AngelaMos | 2026
// cache.go

package core

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/carterperez-dev/foodhall/internal/config"
)

// Cache is the in-process snapshot cache shared by the list views.
type Cache struct {
	c   *ristretto.Cache[string, any]
	ttl time.Duration
}

func NewCache(cfg config.CacheConfig) (*Cache, error) {
	maxItems := cfg.MaxItems
	if maxItems <= 0 {
		maxItems = 1024
	}

	c, err := ristretto.NewCache(&ristretto.Config[string, any]{
		NumCounters: maxItems * 10,
		MaxCost:     maxItems,
		BufferItems: 64,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}

	return &Cache{c: c, ttl: cfg.TTL}, nil
}

func (c *Cache) Get(key string) (any, bool) {
	return c.c.Get(key)
}

// Set stores value with cost 1 and waits until it is visible to readers.
func (c *Cache) Set(key string, value any) {
	if c.ttl > 0 {
		c.c.SetWithTTL(key, value, 1, c.ttl)
	} else {
		c.c.Set(key, value, 1)
	}
	c.c.Wait()
}

func (c *Cache) Delete(key string) {
	c.c.Del(key)
}

type CacheStats struct {
	Hits     uint64  `json:"hits"`
	Misses   uint64  `json:"misses"`
	HitRatio float64 `json:"hit_ratio"`
	Evicted  uint64  `json:"evicted"`
}

func (c *Cache) Stats() CacheStats {
	m := c.c.Metrics
	return CacheStats{
		Hits:     m.Hits(),
		Misses:   m.Misses(),
		HitRatio: m.Ratio(),
		Evicted:  m.KeysEvicted(),
	}
}

func (c *Cache) Close() {
	c.c.Close()
}

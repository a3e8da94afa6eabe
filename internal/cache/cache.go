package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/JustJay7/court-scheduler/internal/database"
	"github.com/patrickmn/go-cache"
)

// Cache holds per-judge case lists.
type Cache interface {
	Get(key string) ([]database.CaseRecord, bool)
	Set(key string, value []database.CaseRecord) error
	Delete(key string)
	Clear()
	Stats() CacheStats
}

type CacheStats struct {
	Hits       int64     `json:"hits"`
	Misses     int64     `json:"misses"`
	Size       int       `json:"size"`
	MaxSize    int       `json:"max_size"`
	LastAccess time.Time `json:"last_access"`
}

type LRUCache struct {
	cache   *cache.Cache
	mu      sync.RWMutex
	stats   CacheStats
	maxSize int
}

func NewCache(maxSize int, ttl time.Duration) Cache {
	return &LRUCache{
		cache:   cache.New(ttl, ttl*2),
		maxSize: maxSize,
		stats:   CacheStats{MaxSize: maxSize},
	}
}

func (c *LRUCache) Get(key string) ([]database.CaseRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.LastAccess = time.Now()

	if data, found := c.cache.Get(key); found {
		if records, ok := data.([]database.CaseRecord); ok {
			c.stats.Hits++
			return clone(records), true
		}
	}

	c.stats.Misses++
	return nil, false
}

func (c *LRUCache) Set(key string, value []database.CaseRecord) error {
	if c.maxSize <= 0 {
		return fmt.Errorf("cache disabled: max size %d", c.maxSize)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.cache.Get(key); !exists && c.cache.ItemCount() >= c.maxSize {
		c.removeOldest()
	}

	c.cache.Set(key, clone(value), cache.DefaultExpiration)
	return nil
}

func (c *LRUCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Delete(key)
}

func (c *LRUCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Flush()
	c.stats = CacheStats{MaxSize: c.maxSize}
}

func (c *LRUCache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := c.stats
	stats.Size = c.cache.ItemCount()
	return stats
}

// removeOldest evicts the entry closest to expiry, which is the one
// written longest ago since every entry shares the same TTL.
func (c *LRUCache) removeOldest() {
	items := c.cache.Items()
	if len(items) == 0 {
		return
	}

	var oldestKey string
	var oldestExpiry int64

	for key, item := range items {
		if oldestKey == "" || item.Expiration < oldestExpiry {
			oldestKey = key
			oldestExpiry = item.Expiration
		}
	}

	c.cache.Delete(oldestKey)
}

func GenerateCacheKey(judgeID int) string {
	return fmt.Sprintf("judge:%d:cases", judgeID)
}

func clone(records []database.CaseRecord) []database.CaseRecord {
	if records == nil {
		return nil
	}
	out := make([]database.CaseRecord, len(records))
	copy(out, records)
	return out
}

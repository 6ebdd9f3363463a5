package growthbook

import (
	"context"
	"sync"
	"time"
)

// Cache stores fetched feature payloads across repository instances,
// keyed by "<apiHost>||<clientKey>". A warm cache lets a starting
// repository serve features before its first network fetch finishes.
type Cache interface {
	Get(ctx context.Context, key string) (*CacheEntry, error)
	Set(ctx context.Context, key string, entry *CacheEntry) error
	Clear(ctx context.Context) error
}

// CacheEntry is a cached feature payload together with its fetch
// time and the instant it goes stale.
type CacheEntry struct {
	Response  *FeatureApiResponse `json:"response"`
	FetchedAt time.Time           `json:"fetchedAt"`
	StaleAt   time.Time           `json:"staleAt"`
}

func (e *CacheEntry) stale(now time.Time) bool {
	return now.After(e.StaleAt)
}

// memoryCache is the default in-process cache.
type memoryCache struct {
	mu   sync.RWMutex
	data map[string]*CacheEntry
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string]*CacheEntry{}}
}

func (c *memoryCache) Get(_ context.Context, key string) (*CacheEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data[key], nil
}

func (c *memoryCache) Set(_ context.Context, key string, entry *CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = entry
	return nil
}

func (c *memoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = map[string]*CacheEntry{}
	return nil
}

func cacheKey(apiHost, clientKey string) string {
	return apiHost + "||" + clientKey
}

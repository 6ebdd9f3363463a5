package growthbook

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisCache is a Cache backed by Redis, for sharing fetched feature
// payloads between processes. Entries expire together with their
// staleness deadline.
type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(prefix string, options *redis.Options) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(options),
		prefix: prefix,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entry CacheEntry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	expiry := time.Until(entry.StaleAt)
	if expiry <= 0 {
		return c.client.Del(ctx, c.prefix+key).Err()
	}
	return c.client.Set(ctx, c.prefix+key, data, expiry).Err()
}

func (c *RedisCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

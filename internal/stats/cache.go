package stats

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache holds display payloads inside the freshness window so repeated page
// loads don't re-hit the upstream APIs. There is no stale-while-revalidate:
// the first request after expiry pays full upstream latency.
type Cache interface {
	Get(ctx context.Context, key string, v interface{}) (bool, error)
	Set(ctx context.Context, key string, v interface{}, ttl time.Duration) error
}

// RedisCache stores payloads as JSON under "<prefix><key>" with the TTL as
// the freshness window.
type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	if prefix == "" {
		prefix = "stats:"
	}
	return &RedisCache{client: client, prefix: prefix}
}

func (c *RedisCache) Get(ctx context.Context, key string, v interface{}) (bool, error) {
	b, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = time.Second
	}
	return c.client.Set(ctx, c.prefix+key, b, ttl).Err()
}

// MemoryCache is the single-process fallback used when Redis is not
// configured, and by unit tests.
type MemoryCache struct {
	mu    sync.RWMutex
	store map[string]memoryEntry
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{store: make(map[string]memoryEntry)}
}

func (c *MemoryCache) Get(ctx context.Context, key string, v interface{}) (bool, error) {
	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.store, key)
		c.mu.Unlock()
		return false, nil
	}
	if err := json.Unmarshal(e.data, v); err != nil {
		return false, err
	}
	return true, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.store[key] = memoryEntry{data: b, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

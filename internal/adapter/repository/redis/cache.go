package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const cachePrefix = "budgetledger:cache:"

// Cache implements usecase.Cache using Redis. A missing key reads as (nil, nil).
type Cache struct {
	client *redis.Client
	prefix string
	onGet  func(hit bool)
}

// WithLookupHook registers fn to be told whether each Get found its key.
func (c *Cache) WithLookupHook(fn func(hit bool)) *Cache {
	c.onGet = fn
	return c
}

// NewCache creates a new Cache.
func NewCache(client *redis.Client) *Cache {
	return &Cache{
		client: client,
		prefix: cachePrefix,
	}
}

// Get retrieves a value by key.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.observe(false)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	c.observe(true)
	return val, nil
}

// Set stores a value with TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

// Delete removes a key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}

func (c *Cache) observe(hit bool) {
	if c.onGet != nil {
		c.onGet(hit)
	}
}

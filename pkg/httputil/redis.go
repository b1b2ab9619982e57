package httputil

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache is a Cache backed by Redis, for multi-instance deployments
// where a shared response cache keeps the combined GitHub call volume
// inside one rate-limit budget. Expiration is delegated to Redis TTLs.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisCache connects to the Redis instance at addr and verifies the
// connection with a ping. A TTL of 0 stores entries without expiration.
func NewRedisCache(ctx context.Context, addr string, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisCache{client: client, ttl: ttl, prefix: "repolens:http:"}, nil
}

// Get retrieves a cached value by key and unmarshals it into v.
func (c *RedisCache) Get(key string, v any) (bool, error) {
	data, err := c.client.Get(context.Background(), c.prefix+key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(data, v)
}

// Set stores a value under the given key with the configured TTL.
func (c *RedisCache) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(context.Background(), c.prefix+key, data, c.ttl).Err()
}

// Close releases the underlying Redis connection pool.
func (c *RedisCache) Close() error { return c.client.Close() }

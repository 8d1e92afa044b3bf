package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisClient is the part of *redis.Client the cache uses.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

// RedisCache stores entries in redis. Transient failures are retried
// with backoff; redis enforces expiry.
type RedisCache struct {
	client redisClient
}

// NewRedisCache connects to the redis server at addr and checks it is
// reachable.
func NewRedisCache(ctx context.Context, addr string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	return &RedisCache{client: client}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	var hit bool
	err := RetryWithBackoff(ctx, func() error {
		b, err := c.client.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			return nil
		case err != nil:
			return retryable(err)
		}
		data, hit = b, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return data, hit, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return RetryWithBackoff(ctx, func() error {
		return retryable(c.client.Set(ctx, key, data, ttl).Err())
	})
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return RetryWithBackoff(ctx, func() error {
		return retryable(c.client.Del(ctx, key).Err())
	})
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// retryable marks everything but context errors for retry.
func retryable(err error) error {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return Retryable(err)
}

var _ Cache = (*RedisCache)(nil)

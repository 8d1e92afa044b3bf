package cache

import (
	"context"
	"time"
)

// ScopedCache prefixes every key of an inner cache. Artifacts rendered
// by different builds share a backend without reading each other's
// entries.
type ScopedCache struct {
	inner  Cache
	prefix string
}

// NewScopedCache wraps inner with a key prefix. A nil inner is a
// NullCache.
func NewScopedCache(inner Cache, prefix string) *ScopedCache {
	if inner == nil {
		inner = NewNullCache()
	}
	return &ScopedCache{inner: inner, prefix: prefix}
}

func (c *ScopedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.inner.Get(ctx, c.prefix+key)
}

func (c *ScopedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.inner.Set(ctx, c.prefix+key, data, ttl)
}

func (c *ScopedCache) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, c.prefix+key)
}

func (c *ScopedCache) Close() error {
	return c.inner.Close()
}

var _ Cache = (*ScopedCache)(nil)

// Package cache stores rendered sparkline artifacts.
//
// Backends implement [Cache]: [NullCache] disables caching, [FileCache]
// keeps entries on disk for the CLI and [RedisCache] shares them between
// service instances. Keys are derived with [InputHash] and
// [ArtifactKey], so identical values and settings always map to the same
// entry.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered artifacts stay valid.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry. A zero ttl never expires.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NullCache discards writes and misses on every read. It backs --no-cache
// and stands in when a [ScopedCache] has no inner store.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)       { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                    { return nil }
func (NullCache) Close() error                                             { return nil }

// Package cache stores layouts and rendered artifacts between runs.
//
// Entries are opaque byte slices addressed by string keys. Keys are built by
// a [Keyer] from content hashes, so a changed graph or changed options never
// hit a stale entry. Three backends are provided:
//
//   - [FileCache] for the CLI, under the user's cache directory
//   - [RedisCache] for the HTTP API, shared between processes
//   - [NullCache] when caching is disabled
package cache

import (
	"context"
	"time"
)

// Cache entry lifetimes.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiration.
// A missing or expired entry is reported as a miss, not an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NullCache stores nothing. The CLI uses it for --no-cache and the "none"
// backend; a pipeline runner built without a cache falls back to it.
type NullCache struct{}

var _ Cache = (*NullCache)(nil)

// NewNullCache returns a cache on which every lookup misses.
func NewNullCache() Cache { return &NullCache{} }

// Get reports a miss, or the context error once ctx is done.
func (*NullCache) Get(ctx context.Context, _ string) ([]byte, bool, error) {
	return nil, false, ctx.Err()
}

func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (*NullCache) Delete(context.Context, string) error { return nil }

func (*NullCache) Close() error { return nil }

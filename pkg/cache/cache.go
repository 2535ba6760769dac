// Package cache provides caching for normalized figures and rendered
// artifacts.
//
// Observational input data is never cached or persisted; only derived
// products (figure JSON, rendered SVG/PNG/PDF bytes) pass through here,
// keyed by content hashes of their inputs.
//
// # Backends
//
//   - [FileCache]: hash-sharded files under a directory, for CLI use
//   - [RedisCache]: Redis-backed storage for server deployments
//   - [NullCache]: no-op cache for tests or --no-cache runs
//
// # Keys
//
// The [Keyer] interface generates deterministic keys from request and
// figure hashes plus the options that affect the cached bytes. Use
// [ScopedKeyer] to namespace keys per tenant or context.
package cache

import (
	"context"
	"time"
)

// Default TTLs per cached product. Figures are cheap to recompute, so they
// expire sooner than rendered artifacts.
const (
	TTLFigure   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of zero means no
	// expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// NullCache is a no-op cache that never stores anything.
// Useful for testing or when caching should be disabled.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always returns a cache miss.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set does nothing.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close does nothing.
func (c *NullCache) Close() error {
	return nil
}

// Ensure NullCache implements Cache.
var _ Cache = (*NullCache)(nil)

// Package cache stores computed layouts and rendered artifacts.
//
// Layout computation is deterministic, so a diagram's serialized form plus
// its resolved layout options fully identify the result. The pipeline hashes
// both into a key with a [Keyer] and keeps the encoded layout in a [Cache].
//
// # Backends
//
//   - [FileCache]: one file per entry under a directory (CLI default)
//   - [MemoryCache]: process-local map (HTTP service default, tests)
//   - [RedisCache]: shared cache for several service replicas
//   - [NullCache]: stores nothing (--no-cache)
//
// All backends are safe for concurrent use.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and true, or nil and false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Default time-to-live values.
const (
	// LayoutTTL bounds how long a cached layout is kept. Layouts never go
	// stale, so this only limits disk and memory growth.
	LayoutTTL = 7 * 24 * time.Hour

	// ArtifactTTL is the lifetime of rendered SVG/DOT output.
	ArtifactTTL = 24 * time.Hour
)

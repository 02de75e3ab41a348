// Package cache provides pluggable byte caches for graph and artifact
// reuse.
//
// Three backends are available:
//
//   - FileCache: sharded JSON entries under a directory, for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: no-op backend for tests or --no-cache runs
//
// Cache keys are derived by a Keyer from content hashes of the inputs,
// so equal inputs with equal options always map to the same entry and
// any change to either produces a fresh key.
package cache

import (
	"context"
	"time"
)

// TTLs for the two cached payload kinds. Graphs are pure functions of
// their input so they could live forever; the TTLs bound disk usage.
const (
	// TTLGraph is how long built graphs (adjacency JSON) are cached.
	TTLGraph = 24 * time.Hour

	// TTLArtifact is how long rendered artifacts (text, SVG, PNG, ...)
	// are cached.
	TTLArtifact = 24 * time.Hour
)

// Cache is a byte-oriented cache with TTL-based expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether
	// the key was present (a miss is not an error).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of zero means the
	// entry does not expire.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

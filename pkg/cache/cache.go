// Package cache stores rendered artifacts keyed by their inputs.
//
// Rendering is deterministic: the same grid, plan, and options always
// produce byte-identical output. That makes rendered artifacts perfect
// cache material: the key is a hash of the inputs and the value is the
// encoded artifact.
//
// Three backends are provided:
//   - [FileCache]: filesystem-backed, used by the CLI (XDG cache dir)
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: no-op, for tests and --no-cache
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present (a miss is not an error).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts holds the render options that discriminate cached
// artifacts. Two renders with the same grid and plan but different
// options must never share a cache entry.
type ArtifactKeyOpts struct {
	Format  string // "gif", "png", "dot"
	Scale   int
	DelayMS int
	Palette string // canonical color encoding, see raster.Palette.Key
}

// ArtifactKey generates the cache key for a rendered artifact.
// gridHash and planHash are content hashes of the serialized inputs
// (see [Hash]).
func ArtifactKey(gridHash, planHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", gridHash, planHash, opts)
}

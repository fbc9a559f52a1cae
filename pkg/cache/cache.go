// Package cache provides pluggable result caching for the layout pipeline.
//
// Layout runs are pure functions of (molecule, force field, seed), which
// makes their results ideal cache entries: the default keyer hashes the
// canonical molecule serialization together with the layout options, so a
// repeated run of the same input skips the simulation entirely.
//
// Backends:
//   - [FileCache]: directory-based cache for CLI usage
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"
)

// Default TTLs per pipeline stage. Layout results are pure functions of
// their inputs so they could live forever; the TTLs bound disk usage.
const (
	// TTLLayout is the retention for laid-out molecules.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is the retention for rendered artifacts.
	TTLArtifact = 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
// Implementations must treat a missing key as (nil, false, nil), not as an
// error.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the inputs that change a layout result beyond the
// molecule itself. ConfigHash is a content hash of the force-field
// configuration (see [Hash]).
type LayoutKeyOpts struct {
	ConfigHash string  `json:"config_hash"`
	Seed       uint64  `json:"seed"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
}

// ArtifactKeyOpts are the inputs that change a rendered artifact for a
// given laid-out molecule.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed"`
}

// Keyer builds cache keys for the pipeline stages.
type Keyer interface {
	// LayoutKey builds a key for a layout result from the molecule's
	// content hash and the layout options.
	LayoutKey(molHash string, opts LayoutKeyOpts) string

	// ArtifactKey builds a key for a rendered artifact from the laid-out
	// molecule's content hash and the render options.
	ArtifactKey(molHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key scheme: a stage prefix plus a SHA-256
// hash of the identifying inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(molHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", molHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(molHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", molHash, opts)
}

// NullCache is a no-op cache that never stores anything.
// Useful for tests or when caching is disabled with --no-cache.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return &NullCache{} }

// Get always reports a miss.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the value.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (c *NullCache) Delete(ctx context.Context, key string) error { return nil }

// Close does nothing.
func (c *NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)

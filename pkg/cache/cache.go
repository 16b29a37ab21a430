// Package cache provides content-addressed caching for pipeline results.
//
// The cache stores opaque byte payloads keyed by hashed option sets, so the
// pipeline can skip re-rendering artifacts for unchanged circuit text. Two
// implementations are provided:
//
//   - [FileCache]: file-based storage for CLI usage
//   - [NullCache]: no-op cache for tests and --no-cache runs
//
// Keys are derived with [DefaultKeyer] from the SHA-256 hash of the circuit
// text plus the options that affect the payload, so differently rendered
// artifacts of the same circuit are cached separately.
package cache

import (
	"context"
	"time"
)

// TTLs per payload class. Scenes are cheap to rebuild; rasterized artifacts
// are the expensive ones.
const (
	TTLScene    = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second result reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys from circuit content and render options.
type Keyer interface {
	// SceneKey identifies a built scene for a circuit text hash.
	SceneKey(textHash string, opts SceneKeyOpts) string

	// ArtifactKey identifies one rendered artifact.
	ArtifactKey(textHash string, opts ArtifactKeyOpts) string
}

// SceneKeyOpts are the options that change a built scene.
type SceneKeyOpts struct {
	GridSpacing float64
	MinWidth    float64
	MinHeight   float64
}

// ArtifactKeyOpts are the options that change a rendered artifact. Fields
// that do not affect a given format's bytes are left zero by the caller, so
// a presentation-only change never invalidates formats it cannot reach.
type ArtifactKeyOpts struct {
	Format      string
	GridSpacing float64
	MinWidth    float64
	MinHeight   float64
	Zoom        float64
	NoGrid      bool
}

// DefaultKeyer hashes option structs into namespaced keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SceneKey implements Keyer.
func (k *DefaultKeyer) SceneKey(textHash string, opts SceneKeyOpts) string {
	return hashKey("scene", textHash, opts)
}

// ArtifactKey implements Keyer.
func (k *DefaultKeyer) ArtifactKey(textHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", textHash, opts)
}

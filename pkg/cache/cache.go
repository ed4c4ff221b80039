// Package cache provides pluggable caching for rendered artifacts.
//
// Rendering a figure to its wire form, and rasterizing tree snapshots
// through Graphviz, are both deterministic in their inputs. The cache keys
// artifacts by content hash so repeated CLI invocations and the preview
// server can skip the work.
//
// Two backends are provided: a file cache for single-machine CLI usage and
// a redis cache for shared deployments. NullCache disables caching.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was present
	// and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys for the artifact kinds the tool produces.
type Keyer interface {
	// RenderKey keys a rendered widget artifact by figure content hash.
	RenderKey(figureHash string) string

	// SnapshotKey keys a rasterized tree snapshot by tree content hash and
	// output format.
	SnapshotKey(treeHash, format string) string
}

// DefaultKeyer generates unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// RenderKey generates a key for a rendered widget artifact.
func (k *DefaultKeyer) RenderKey(figureHash string) string {
	return hashKey("render", figureHash)
}

// SnapshotKey generates a key for a tree snapshot.
func (k *DefaultKeyer) SnapshotKey(treeHash, format string) string {
	return hashKey("snapshot", treeHash, format)
}

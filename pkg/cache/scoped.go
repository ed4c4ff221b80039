package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// Useful when one cache backend serves several preview servers or users
// that must not share artifacts.
//
// Example usage:
//
//	// Session-specific keys for a multi-user preview server
//	sessionKeyer := NewScopedKeyer(NewDefaultKeyer(), "session:abc123:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// RenderKey generates a prefixed key for a rendered widget artifact.
func (k *ScopedKeyer) RenderKey(figureHash string) string {
	return k.prefix + k.inner.RenderKey(figureHash)
}

// SnapshotKey generates a prefixed key for a tree snapshot.
func (k *ScopedKeyer) SnapshotKey(treeHash, format string) string {
	return k.prefix + k.inner.SnapshotKey(treeHash, format)
}

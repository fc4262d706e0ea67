package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// This is useful behind the API server where different users or contexts
// need separate cache namespaces.
//
// Example usage:
//
//	// User-specific keys for private plans
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
//
//	// Global keys for shared plans
//	globalKeyer := NewDefaultKeyer()
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

// TopologyKey generates a prefixed key for a derived wall topology.
func (k *ScopedKeyer) TopologyKey(planHash string, opts TopologyKeyOpts) string {
	return k.prefix + k.inner.TopologyKey(planHash, opts)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(topologyHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(topologyHash, opts)
}

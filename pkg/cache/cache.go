// Package cache provides stage-result caching for the planwright pipeline.
//
// The engine itself is pure and performs no I/O; caching lives entirely on
// the caller side of that boundary. The pipeline runner caches the derived
// wall topology keyed by plan content, and rendered artifacts keyed by
// topology content plus render options, so re-building an unchanged plan is
// a lookup instead of a recomputation.
//
// Backends: FileCache for CLI usage, RedisCache for the API server,
// NullCache to disable caching. ScopedKeyer adds a prefix for multi-tenant
// isolation.
package cache

import (
	"context"
	"time"
)

// TTLs for cached stage results. Topology results are small and cheap to
// keep; artifacts can be large, so they expire sooner.
const (
	TTLTopology = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache stores and retrieves stage results by key.
type Cache interface {
	// Get returns the cached data for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key with the given TTL (0 means no expiry).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TopologyKeyOpts are the inputs that change the derived topology beyond
// the plan content itself. They are hashed into the topology key.
type TopologyKeyOpts struct {
	CellSize float64 `json:"cell_size"`
}

// ArtifactKeyOpts are render options that change artifact bytes. They are
// hashed into the artifact key.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	NamePrefix string  `json:"name_prefix"`
	ShowLabels bool    `json:"show_labels"`
	LabelSize  float64 `json:"label_size"`
	WallColor  string  `json:"wall_color"`
	LabelColor string  `json:"label_color"`
}

// Keyer generates cache keys for pipeline stages.
type Keyer interface {
	// TopologyKey generates a key for a derived wall topology.
	TopologyKey(planHash string, opts TopologyKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(topologyHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates unscoped cache keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// TopologyKey generates a key for a derived wall topology.
func (k *DefaultKeyer) TopologyKey(planHash string, opts TopologyKeyOpts) string {
	return hashKey("topology", planHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(topologyHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", topologyHash, opts)
}

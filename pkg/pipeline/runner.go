package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/planwright/planwright/pkg/cache"
	"github.com/planwright/planwright/pkg/errors"
	"github.com/planwright/planwright/pkg/observability"
	"github.com/planwright/planwright/pkg/sink"
	"github.com/planwright/planwright/pkg/topology"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete topology → worldmap → render pipeline with
// caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		RunID:    uuid.New(),
		PlanHash: PlanHash(opts),
	}
	result.Stats.RoomCount = len(opts.Plan.Rooms)
	result.Stats.DoorCount = len(opts.Plan.Doors)

	// Stage 1: Topology
	topoStart := time.Now()
	segments, topoHit, err := r.TopologyWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.TopologyTime = time.Since(topoStart)
	result.Stats.SegmentCount = len(segments)
	result.CacheInfo.TopologyHit = topoHit

	r.Logger.Info("computed wall topology",
		"plan", opts.Plan.Name,
		"rooms", result.Stats.RoomCount,
		"segments", len(segments),
		"cached", topoHit,
		"duration", result.Stats.TopologyTime)

	// Stage 2: Worldmap
	mapStart := time.Now()
	result.Scene = BuildScene(ctx, segments, opts)
	result.Stats.MapTime = time.Since(mapStart)

	r.Logger.Info("mapped to world coordinates",
		"cell_size", opts.Plan.CellSize,
		"labels", len(result.Scene.Labels),
		"duration", result.Stats.MapTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.Scene, segments, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// TopologyWithCacheInfo derives wall segments with caching and returns cache
// hit info.
func (r *Runner) TopologyWithCacheInfo(ctx context.Context, opts Options) ([]topology.Segment, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.TopologyKey(PlanHash(opts), opts.TopologyKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if segments, err := unmarshalSegments(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "topology")
				return segments, true, nil
			}
			// Corrupt entry, recompute
		}
	}
	observability.Cache().OnCacheMiss(ctx, "topology")

	segments, err := ComputeTopology(ctx, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := marshalSegments(segments); err == nil {
		if r.Cache.Set(ctx, cacheKey, data, cache.TTLTopology) == nil {
			observability.Cache().OnCacheSet(ctx, "topology", len(data))
		}
	}

	return segments, false, nil
}

// Topology is a convenience wrapper that calls TopologyWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Topology(ctx context.Context, opts Options) ([]topology.Segment, error) {
	segments, _, err := r.TopologyWithCacheInfo(ctx, opts)
	return segments, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info. Artifact keys derive from the grid-space topology plus the plan's
// presentation options, so a relabeled plan re-renders without recomputing
// walls.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, scene sink.Scene, segments []topology.Segment, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	topoData, err := marshalSegments(segments)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize topology for cache key")
	}
	topoHash := cache.Hash(topoData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(topoHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := Render(ctx, scene, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(topoHash, opts.ArtifactKeyOpts(format))
		if r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact) == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// PlanHash returns the content hash of the plan's geometry inputs. Plans
// that differ only in presentation options share a hash.
func PlanHash(opts Options) string {
	p := opts.Plan
	inputs := geometryInputs{
		CellSize: p.CellSize,
		Origin:   p.Origin,
		Rooms:    p.TopologyRooms(),
		Doors:    p.TopologyDoors(),
	}
	data, err := json.Marshal(inputs)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

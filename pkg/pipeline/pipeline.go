// Package pipeline provides the core plan-to-walls pipeline for planwright.
//
// This package implements the complete topology → worldmap → render pipeline
// that can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Topology: derive minimal merged wall segments with door openings from
//     the plan's grid-cell rooms
//  2. Worldmap: scale and translate the grid geometry into world coordinates
//     and place room label anchors
//  3. Render: generate output in various formats (JSON, SVG, DOT, PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Plan:    p,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/planwright/planwright/pkg/cache"
	"github.com/planwright/planwright/pkg/errors"
	"github.com/planwright/planwright/pkg/plan"
	"github.com/planwright/planwright/pkg/sink"
	"github.com/planwright/planwright/pkg/topology"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats. PNG and DOT render
// the room adjacency diagram; JSON and SVG render the wall map itself.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatSVG:  true,
	FormatDOT:  true,
	FormatPNG:  true,
}

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Plan is the floor-plan definition to build. Required.
	Plan *plan.Plan `json:"plan"`

	// Formats selects the output formats. Defaults to ["json"].
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses cache reads, forcing recomputation.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this pipeline execution.
	RunID uuid.UUID

	// Scene holds the world-space wall segments, label anchors and bounds.
	Scene sink.Scene

	// PlanHash is the content hash of the plan's geometry inputs.
	PlanHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RoomCount    int
	DoorCount    int
	SegmentCount int
	TopologyTime time.Duration
	MapTime      time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage. The worldmap stage is
// pure arithmetic and is never cached.
type CacheInfo struct {
	TopologyHit bool // Whether the wall topology came from cache
	RenderHit   bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, svg, dot, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Plan == nil {
		return errors.New(errors.ErrCodeInvalidPlan, "plan is required")
	}
	if err := o.Plan.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// TopologyKeyOpts returns cache key options for the topology stage.
func (o *Options) TopologyKeyOpts() cache.TopologyKeyOpts {
	return cache.TopologyKeyOpts{CellSize: o.Plan.CellSize}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	popts := o.Plan.Options
	wall := popts.WallRGB()
	label := popts.LabelRGB()
	return cache.ArtifactKeyOpts{
		Format:     format,
		NamePrefix: popts.NamePrefix,
		ShowLabels: popts.LabelsEnabled(),
		LabelSize:  popts.LabelSize,
		WallColor:  rgbString(wall),
		LabelColor: rgbString(label),
	}
}

func rgbString(c [3]uint8) string {
	return fmt.Sprintf("%d,%d,%d", c[0], c[1], c[2])
}

// geometryInputs is the canonical form hashed into PlanHash. Only fields
// that change the derived walls participate; presentation options do not.
type geometryInputs struct {
	CellSize float64         `json:"cell_size"`
	Origin   [2]float64      `json:"origin"`
	Rooms    []topology.Room `json:"rooms"`
	Doors    []topology.Door `json:"doors"`
}

package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/planwright/planwright/pkg/errors"
	"github.com/planwright/planwright/pkg/observability"
	"github.com/planwright/planwright/pkg/sink"
	"github.com/planwright/planwright/pkg/topology"
	"github.com/planwright/planwright/pkg/worldmap"
)

// ComputeTopology derives the grid-space wall segments for the plan: build
// occupancy, extract boundary walls, merge collinear runs and cut door
// openings. The only hard failure is a plan whose rooms occupy no cells.
func ComputeTopology(ctx context.Context, opts Options) ([]topology.Segment, error) {
	p := opts.Plan
	rooms := p.TopologyRooms()

	start := time.Now()
	observability.Pipeline().OnTopologyStart(ctx, p.Name, len(rooms))

	segments, err := topology.Walls(rooms, p.TopologyDoors(), p.CellSize)
	observability.Pipeline().OnTopologyComplete(ctx, p.Name, len(segments), time.Since(start), err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNoRooms, err, "plan %q has no occupied cells", p.Name)
	}
	return segments, nil
}

// BuildScene maps grid-space segments into world coordinates and places room
// label anchors. This stage is pure arithmetic and never fails.
func BuildScene(ctx context.Context, segments []topology.Segment, opts Options) sink.Scene {
	p := opts.Plan
	rooms := p.TopologyRooms()

	start := time.Now()
	observability.Pipeline().OnMapStart(ctx, p.Name, len(segments))

	m := worldmap.New(p.CellSize, p.OriginPoint())
	scene := sink.Scene{
		Segments: m.Segments(segments),
		Labels:   m.Labels(rooms),
	}
	if occ := topology.BuildOccupancy(rooms); len(occ) > 0 {
		if b, err := occ.Bounds(); err == nil {
			scene.Bounds = m.Rect(b)
		}
	}

	observability.Pipeline().OnMapComplete(ctx, p.Name, time.Since(start), nil)
	return scene
}

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, scene sink.Scene, opts Options) (map[string][]byte, error) {
	p := opts.Plan

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var err error
	for _, format := range opts.Formats {
		var data []byte
		switch format {
		case FormatJSON:
			data, err = sink.RenderJSON(scene,
				sink.WithJSONPlan(p.Name),
				sink.WithJSONNamePrefix(p.Options.NamePrefix),
				sink.WithJSONCellSize(p.CellSize),
				sink.WithJSONDoorCount(len(p.Doors)),
			)
		case FormatSVG:
			data = sink.RenderSVG(scene, svgOptions(opts)...)
		case FormatDOT:
			data = []byte(sink.ToDOT(scene, p.TopologyDoors()))
		case FormatPNG:
			dot := sink.ToDOT(scene, p.TopologyDoors())
			data, err = sink.RenderGraphPNG(ctx, dot)
		default:
			err = errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}
		if err != nil {
			err = errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
			break
		}
		artifacts[format] = data
	}

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

// svgOptions translates the plan's presentation options into SVG renderer
// options.
func svgOptions(opts Options) []sink.SVGOption {
	popts := opts.Plan.Options
	svgOpts := []sink.SVGOption{
		sink.WithWallColor(popts.WallRGB()),
		sink.WithLabelColor(popts.LabelRGB()),
		sink.WithLabelSize(popts.LabelSize),
		sink.WithIDPrefix(popts.NamePrefix),
	}
	if !popts.LabelsEnabled() {
		svgOpts = append(svgOpts, sink.WithoutLabels())
	}
	return svgOpts
}

// marshalSegments serializes grid-space segments for caching.
func marshalSegments(segments []topology.Segment) ([]byte, error) {
	return json.Marshal(segments)
}

// unmarshalSegments deserializes cached grid-space segments.
func unmarshalSegments(data []byte) ([]topology.Segment, error) {
	var segments []topology.Segment
	if err := json.Unmarshal(data, &segments); err != nil {
		return nil, err
	}
	return segments, nil
}

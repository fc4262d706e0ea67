// Package pkg provides the core libraries for Planwright floor-plan generation.
//
// # Overview
//
// Planwright turns room definitions on an integer grid into minimal wall
// geometry with door openings. The pkg directory is organized into five main
// areas:
//
//  1. [plan] - Input model (rooms, doors, presentation options)
//  2. [topology] - Wall derivation on the grid (occupancy, edges, merging, doors)
//  3. [worldmap] - Grid-to-world coordinate mapping and label anchors
//  4. [sink] - Output formats (JSON, SVG, adjacency DOT/PNG)
//  5. [pipeline] - Orchestration with per-stage caching
//
// # Architecture
//
// The typical data flow through Planwright:
//
//	Plan file (JSON/TOML)
//	         ↓
//	    [topology] package (occupancy → edges → merged segments → door cuts)
//	         ↓
//	    [worldmap] package (scale + translate, label anchors, bounds)
//	         ↓
//	    [sink] package (JSON, SVG, adjacency graphs)
//	         ↓
//	    JSON/SVG/DOT/PNG output
//
// # Quick Start
//
// Compute wall segments and render them:
//
//	import (
//	    "github.com/planwright/planwright/pkg/sink"
//	    "github.com/planwright/planwright/pkg/topology"
//	    "github.com/planwright/planwright/pkg/worldmap"
//	)
//
//	rooms := []topology.Room{
//	    {Name: "Kitchen", Cells: []topology.Cell{{Col: 0, Row: 0}}},
//	    {Name: "Hall", Cells: []topology.Cell{{Col: 1, Row: 0}}},
//	}
//
//	// 1. Derive grid-space wall segments
//	segments, _ := topology.Walls(rooms, nil, 100)
//
//	// 2. Map to world coordinates
//	m := worldmap.New(100, topology.Point{})
//	scene := sink.Scene{
//	    Segments: m.Segments(segments),
//	    Labels:   m.Labels(rooms),
//	}
//
//	// 3. Render to SVG
//	svg := sink.RenderSVG(scene)
//
// # Main Packages
//
// [plan] - Plan documents loaded from JSON or TOML. Validation, defaults, and
// conversion into topology inputs.
//
// [topology] - The wall engine. Builds cell occupancy, collects boundary
// edges between differing occupants, merges collinear runs into minimal
// segments, and cuts door openings.
//
// [worldmap] - Affine mapping from grid space to world space plus room label
// anchor placement and scene bounds.
//
// [sink] - Renderers for the computed scene: JSON wall lists, SVG drawings,
// and room adjacency graphs via Graphviz.
//
// [pipeline] - Complete generation pipeline (topology → worldmap → render)
// used by the CLI and the HTTP API, with content-addressed caching of
// intermediate and final results.
//
// [cache] - Cache backends (file, Redis, null) with TTLs and retry helpers.
//
// [errors] - Coded errors shared across packages with user-facing messages.
//
// [observability] - Pluggable hooks for pipeline, cache, and HTTP events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/topology/... # Specific package
//
// [plan]: https://pkg.go.dev/github.com/planwright/planwright/pkg/plan
// [topology]: https://pkg.go.dev/github.com/planwright/planwright/pkg/topology
// [worldmap]: https://pkg.go.dev/github.com/planwright/planwright/pkg/worldmap
// [sink]: https://pkg.go.dev/github.com/planwright/planwright/pkg/sink
// [pipeline]: https://pkg.go.dev/github.com/planwright/planwright/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/planwright/planwright/pkg/cache
// [errors]: https://pkg.go.dev/github.com/planwright/planwright/pkg/errors
// [observability]: https://pkg.go.dev/github.com/planwright/planwright/pkg/observability
package pkg

package sink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/goccy/go-graphviz"

	"github.com/planwright/planwright/pkg/topology"
)

// outsideNode is the synthetic graph node representing the building exterior.
// It only appears when a door opens to the outside.
const outsideNode = "outside"

// ToDOT converts the scene's room adjacency into Graphviz DOT format. Rooms
// become nodes; every pair of rooms that shares at least one wall segment
// gets an edge. Edges carrying a door opening render solid and bold, plain
// shared walls render dashed. Doors to the exterior connect to a synthetic
// "outside" node.
//
// The resulting DOT string can be rendered with [RenderGraphSVG] or
// [RenderGraphPNG].
func ToDOT(s Scene, doors []topology.Door) string {
	type pair struct{ a, b string }

	shared := make(map[pair]float64)
	for _, seg := range s.Segments {
		if seg.SideA == "" || seg.SideB == "" {
			continue
		}
		a, b := seg.SideA, seg.SideB
		if a > b {
			a, b = b, a
		}
		shared[pair{a, b}] += seg.Length()
	}

	doored := make(map[pair]bool)
	exterior := make(map[string]bool)
	for _, d := range doors {
		if len(d.Between) < 2 {
			continue
		}
		a, b := d.Between[0], d.Between[1]
		if b == "" {
			exterior[a] = true
			continue
		}
		if a > b {
			a, b = b, a
		}
		doored[pair{a, b}] = true
	}

	var buf bytes.Buffer
	buf.WriteString("graph floorplan {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("\n")

	for _, room := range slices.Sorted(maps.Keys(s.Labels)) {
		fmt.Fprintf(&buf, "  %q;\n", room)
	}
	if len(exterior) > 0 {
		fmt.Fprintf(&buf, "  %q [style=\"rounded,filled,dashed\", fillcolor=lightgrey];\n", outsideNode)
	}

	buf.WriteString("\n")
	pairs := slices.SortedFunc(maps.Keys(shared), func(x, y pair) int {
		if x.a != y.a {
			if x.a < y.a {
				return -1
			}
			return 1
		}
		if x.b < y.b {
			return -1
		}
		if x.b > y.b {
			return 1
		}
		return 0
	})
	for _, p := range pairs {
		if doored[p] {
			fmt.Fprintf(&buf, "  %q -- %q [penwidth=2];\n", p.a, p.b)
		} else {
			fmt.Fprintf(&buf, "  %q -- %q [style=dashed, color=grey50];\n", p.a, p.b)
		}
	}
	for _, room := range slices.Sorted(maps.Keys(exterior)) {
		fmt.Fprintf(&buf, "  %q -- %q [penwidth=2];\n", room, outsideNode)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderGraphSVG renders a DOT graph to SVG using Graphviz.
func RenderGraphSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderGraph(ctx, dot, graphviz.SVG)
}

// RenderGraphPNG renders a DOT graph to PNG using Graphviz.
func RenderGraphPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderGraph(ctx, dot, graphviz.PNG)
}

func renderGraph(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

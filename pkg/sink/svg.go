package sink

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	wallColor   [3]uint8
	labelColor  [3]uint8
	labelSize   float64
	strokeWidth float64
	showLabels  bool
	idPrefix    string
}

// WithWallColor sets the wall stroke color.
func WithWallColor(c [3]uint8) SVGOption { return func(r *svgRenderer) { r.wallColor = c } }

// WithLabelColor sets the room label text color.
func WithLabelColor(c [3]uint8) SVGOption { return func(r *svgRenderer) { r.labelColor = c } }

// WithLabelSize sets the room label font size in world units.
func WithLabelSize(s float64) SVGOption {
	return func(r *svgRenderer) {
		if s > 0 {
			r.labelSize = s
		}
	}
}

// WithStrokeWidth sets the wall stroke width in world units.
func WithStrokeWidth(w float64) SVGOption {
	return func(r *svgRenderer) {
		if w > 0 {
			r.strokeWidth = w
		}
	}
}

// WithoutLabels suppresses room label text.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.showLabels = false } }

// WithIDPrefix assigns element ids to the output: the wall group gets
// "<prefix>_Walls" and each label "<prefix>_<room>", so downstream tools can
// address the pieces by name.
func WithIDPrefix(prefix string) SVGOption {
	return func(r *svgRenderer) { r.idPrefix = prefix }
}

// RenderSVG renders a 2D preview of the floor plan. Walls appear as line
// segments with square caps so collinear stubs meet cleanly at door jambs;
// room labels render centered on their anchors. The viewBox is the scene
// bounds padded by one label height on every side.
func RenderSVG(s Scene, opts ...SVGOption) []byte {
	r := svgRenderer{
		wallColor:   [3]uint8{30, 30, 30},
		labelColor:  [3]uint8{80, 80, 80},
		labelSize:   20,
		strokeWidth: 4,
		showLabels:  true,
	}
	for _, opt := range opts {
		opt(&r)
	}

	pad := r.labelSize
	minX := s.Bounds.MinX - pad
	minY := s.Bounds.MinY - pad
	width := s.Bounds.Width() + 2*pad
	height := s.Bounds.Depth() + 2*pad

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		minX, minY, width, height, width, height)

	renderWalls(&buf, &r, s)
	if r.showLabels {
		renderLabels(&buf, &r, s)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderWalls(buf *bytes.Buffer, r *svgRenderer, s Scene) {
	indent := "  "
	if r.idPrefix != "" {
		fmt.Fprintf(buf, `  <g id="%s_Walls">`+"\n", escapeXML(r.idPrefix))
		indent = "    "
	}
	stroke := rgb(r.wallColor)
	for _, seg := range s.Segments {
		fmt.Fprintf(buf, indent+`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.1f" stroke-linecap="square"/>`+"\n",
			seg.Start.X, seg.Start.Y, seg.End.X, seg.End.Y, stroke, r.strokeWidth)
	}
	if r.idPrefix != "" {
		buf.WriteString("  </g>\n")
	}
}

func renderLabels(buf *bytes.Buffer, r *svgRenderer, s Scene) {
	fill := rgb(r.labelColor)
	for _, room := range slices.Sorted(maps.Keys(s.Labels)) {
		p := s.Labels[room]
		id := ""
		if r.idPrefix != "" {
			id = fmt.Sprintf(` id="%s"`, escapeXML(r.idPrefix+"_"+room))
		}
		fmt.Fprintf(buf, `  <text%s x="%.2f" y="%.2f" font-size="%.0f" fill="%s" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif">%s</text>`+"\n",
			id, p.X, p.Y, r.labelSize, fill, escapeXML(room))
	}
}

func rgb(c [3]uint8) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c[0], c[1], c[2])
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

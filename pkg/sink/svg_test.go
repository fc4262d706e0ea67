package sink

import (
	"strings"
	"testing"

	"github.com/planwright/planwright/pkg/topology"
)

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testScene()))

	if !strings.HasPrefix(svg, "<svg xmlns=") {
		t.Error("output should start with an svg element")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("output should close the svg element")
	}
	if got := strings.Count(svg, "<line "); got != 2 {
		t.Errorf("got %d line elements, want 2", got)
	}
	if !strings.Contains(svg, ">Kitchen</text>") || !strings.Contains(svg, ">Hall</text>") {
		t.Error("room labels missing from output")
	}

	// Bounds 200x100 padded by default label size 20 on every side
	if !strings.Contains(svg, `viewBox="-20.0 -20.0 240.0 140.0"`) {
		t.Errorf("unexpected viewBox in: %s", svg[:120])
	}
}

func TestRenderSVGOptions(t *testing.T) {
	svg := string(RenderSVG(testScene(),
		WithWallColor([3]uint8{255, 0, 0}),
		WithLabelColor([3]uint8{0, 0, 255}),
		WithLabelSize(30),
		WithStrokeWidth(8),
	))

	if !strings.Contains(svg, `stroke="rgb(255,0,0)"`) {
		t.Error("wall color option not applied")
	}
	if !strings.Contains(svg, `fill="rgb(0,0,255)"`) {
		t.Error("label color option not applied")
	}
	if !strings.Contains(svg, `font-size="30"`) {
		t.Error("label size option not applied")
	}
	if !strings.Contains(svg, `stroke-width="8.0"`) {
		t.Error("stroke width option not applied")
	}
}

func TestRenderSVGIDPrefix(t *testing.T) {
	svg := string(RenderSVG(testScene(), WithIDPrefix("FP")))

	if !strings.Contains(svg, `<g id="FP_Walls">`) || !strings.Contains(svg, "</g>") {
		t.Error("wall group id missing from output")
	}
	if !strings.Contains(svg, `id="FP_Kitchen"`) || !strings.Contains(svg, `id="FP_Hall"`) {
		t.Error("label ids missing from output")
	}

	plain := string(RenderSVG(testScene()))
	if strings.Contains(plain, "<g id=") || strings.Contains(plain, `<text id=`) {
		t.Error("ids should only appear when a prefix is set")
	}
}

func TestRenderSVGWithoutLabels(t *testing.T) {
	svg := string(RenderSVG(testScene(), WithoutLabels()))
	if strings.Contains(svg, "<text") {
		t.Error("labels should be suppressed")
	}
}

func TestRenderSVGEscapesLabels(t *testing.T) {
	s := Scene{
		Labels: map[string]topology.Point{"A & B <Suite>": {X: 0, Y: 0}},
	}
	svg := string(RenderSVG(s))
	if !strings.Contains(svg, "A &amp; B &lt;Suite&gt;") {
		t.Errorf("label not escaped: %s", svg)
	}
}

package worldmap

import (
	"math"
	"testing"

	"github.com/planwright/planwright/pkg/topology"
)

func TestToWorld(t *testing.T) {
	m := New(100, topology.Point{X: 10, Y: -20})

	tests := []struct {
		grid topology.Point
		want topology.Point
	}{
		{topology.Point{X: 0, Y: 0}, topology.Point{X: 10, Y: -20}},
		{topology.Point{X: 1, Y: 2}, topology.Point{X: 110, Y: 180}},
		{topology.Point{X: 0.5, Y: 0.25}, topology.Point{X: 60, Y: 5}},
	}

	for _, tt := range tests {
		if got := m.ToWorld(tt.grid); got != tt.want {
			t.Errorf("ToWorld(%v) = %v, want %v", tt.grid, got, tt.want)
		}
	}
}

func TestNew_ZeroCellSize(t *testing.T) {
	m := New(0, topology.Point{})
	if m.CellSize != 1 {
		t.Errorf("CellSize = %g, want fallback 1", m.CellSize)
	}
}

func TestSegments_TwoAdjacentRooms(t *testing.T) {
	// Concrete contract scenario: rooms A {(0,0)} and B {(1,0)} at cell
	// size 100 and origin (0,0) yield one shared wall from (100,0) to
	// (100,100) in world space.
	rooms := []topology.Room{
		{Name: "A", Cells: []topology.Cell{{Col: 0, Row: 0}}},
		{Name: "B", Cells: []topology.Cell{{Col: 1, Row: 0}}},
	}
	segs, err := topology.Walls(rooms, nil, 100)
	if err != nil {
		t.Fatalf("Walls() error: %v", err)
	}

	world := New(100, topology.Point{}).Segments(segs)

	var shared []topology.Segment
	for _, s := range world {
		if s.Matches("A", "B") {
			shared = append(shared, s)
		}
	}
	if len(shared) != 1 {
		t.Fatalf("shared walls = %d, want 1", len(shared))
	}
	if shared[0].Start != (topology.Point{X: 100, Y: 0}) || shared[0].End != (topology.Point{X: 100, Y: 100}) {
		t.Errorf("shared wall %v-%v, want (100,0)-(100,100)", shared[0].Start, shared[0].End)
	}
}

func TestSegments_DoorGapWidth(t *testing.T) {
	rooms := []topology.Room{
		{Name: "A", Cells: []topology.Cell{{Col: 0, Row: 0}}},
		{Name: "B", Cells: []topology.Cell{{Col: 1, Row: 0}}},
	}
	doors := []topology.Door{{Between: []string{"A", "B"}, Position: 0.5, Width: 50}}
	segs, err := topology.Walls(rooms, doors, 100)
	if err != nil {
		t.Fatalf("Walls() error: %v", err)
	}

	world := New(100, topology.Point{}).Segments(segs)

	var shared []topology.Segment
	for _, s := range world {
		if s.Matches("A", "B") {
			shared = append(shared, s)
		}
	}
	if len(shared) != 2 {
		t.Fatalf("shared stubs = %d, want 2", len(shared))
	}
	if shared[0].End != (topology.Point{X: 100, Y: 25}) || shared[1].Start != (topology.Point{X: 100, Y: 75}) {
		t.Errorf("stubs %+v, want gap from (100,25) to (100,75)", shared)
	}
	gap := shared[1].Start.Y - shared[0].End.Y
	if math.Abs(gap-50) > 1e-9 {
		t.Errorf("gap = %g, want 50", gap)
	}
}

func TestLabels(t *testing.T) {
	m := New(100, topology.Point{})
	rooms := []topology.Room{
		{Name: "A", Cells: []topology.Cell{{Col: 0, Row: 0}, {Col: 1, Row: 0}}},
		{Name: "Empty"},
	}

	labels := m.Labels(rooms)

	if len(labels) != 1 {
		t.Fatalf("len(labels) = %d, want 1 (empty room skipped)", len(labels))
	}
	want := topology.Point{X: 100, Y: 50}
	if labels["A"] != want {
		t.Errorf("labels[A] = %v, want %v", labels["A"], want)
	}
}

func TestRect(t *testing.T) {
	m := New(100, topology.Point{X: 10, Y: 10})
	b := topology.Bounds{MinCol: 0, MinRow: 0, MaxCol: 3, MaxRow: 2}

	r := m.Rect(b)

	if r.MinX != 10 || r.MinY != 10 || r.MaxX != 310 || r.MaxY != 210 {
		t.Errorf("Rect = %+v, want (10,10)-(310,210)", r)
	}
	if r.Width() != 300 || r.Depth() != 200 {
		t.Errorf("Width/Depth = %g/%g, want 300/200", r.Width(), r.Depth())
	}
	if r.Center() != (topology.Point{X: 160, Y: 110}) {
		t.Errorf("Center = %v, want (160,110)", r.Center())
	}
}

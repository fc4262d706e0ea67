package topology

import (
	"errors"
	"testing"
)

func TestBuildOccupancy(t *testing.T) {
	rooms := []Room{
		{Name: "Kitchen", Cells: []Cell{{0, 0}, {1, 0}}},
		{Name: "Hall", Cells: []Cell{{2, 0}}},
	}

	occ := BuildOccupancy(rooms)

	if len(occ) != 3 {
		t.Fatalf("len(occ) = %d, want 3", len(occ))
	}
	if occ[Cell{0, 0}] != "Kitchen" {
		t.Errorf("occ[0,0] = %q, want Kitchen", occ[Cell{0, 0}])
	}
	if occ[Cell{2, 0}] != "Hall" {
		t.Errorf("occ[2,0] = %q, want Hall", occ[Cell{2, 0}])
	}
}

func TestBuildOccupancy_LastRoomWins(t *testing.T) {
	rooms := []Room{
		{Name: "First", Cells: []Cell{{0, 0}, {1, 0}}},
		{Name: "Second", Cells: []Cell{{1, 0}}},
	}

	occ := BuildOccupancy(rooms)

	if occ[Cell{0, 0}] != "First" {
		t.Errorf("occ[0,0] = %q, want First", occ[Cell{0, 0}])
	}
	if occ[Cell{1, 0}] != "Second" {
		t.Errorf("occ[1,0] = %q, want Second (last claim wins)", occ[Cell{1, 0}])
	}
}

func TestBuildOccupancy_Empty(t *testing.T) {
	occ := BuildOccupancy(nil)
	if len(occ) != 0 {
		t.Errorf("len(occ) = %d, want 0", len(occ))
	}

	occ = BuildOccupancy([]Room{{Name: "Empty"}})
	if len(occ) != 0 {
		t.Errorf("room without cells should claim nothing, got %d cells", len(occ))
	}
}

func TestOccupancyBounds(t *testing.T) {
	occ := BuildOccupancy([]Room{
		{Name: "A", Cells: []Cell{{-1, 2}, {3, 0}}},
	})

	b, err := occ.Bounds()
	if err != nil {
		t.Fatalf("Bounds() error: %v", err)
	}

	want := Bounds{MinCol: -1, MinRow: 0, MaxCol: 4, MaxRow: 3}
	if b != want {
		t.Errorf("Bounds() = %+v, want %+v", b, want)
	}
	if b.Width() != 5 || b.Height() != 3 {
		t.Errorf("Width/Height = %d/%d, want 5/3", b.Width(), b.Height())
	}
}

func TestOccupancyBounds_Empty(t *testing.T) {
	_, err := Occupancy{}.Bounds()
	if !errors.Is(err, ErrNoCells) {
		t.Errorf("Bounds() error = %v, want ErrNoCells", err)
	}
}

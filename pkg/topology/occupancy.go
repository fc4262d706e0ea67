package topology

import "errors"

// ErrNoCells is returned when a room list claims no grid cells at all.
// There is nothing sensible to derive from an empty plan, so this is the
// one hard input failure of the engine.
var ErrNoCells = errors.New("no occupied cells")

// Occupancy maps each claimed grid cell to the name of its owning room.
type Occupancy map[Cell]string

// BuildOccupancy converts a room list into a cell ownership map.
//
// When several rooms claim the same cell the last room in the list wins.
// This is a documented precedence rule, not an error: the engine never
// validates that cell sets are disjoint.
func BuildOccupancy(rooms []Room) Occupancy {
	occ := make(Occupancy)
	for _, room := range rooms {
		for _, cell := range room.Cells {
			occ[cell] = room.Name
		}
	}
	return occ
}

// Bounds returns the grid bounding box of all occupied cells.
// It returns ErrNoCells for an empty map.
func (o Occupancy) Bounds() (Bounds, error) {
	if len(o) == 0 {
		return Bounds{}, ErrNoCells
	}
	var b Bounds
	first := true
	for cell := range o {
		if first {
			b = Bounds{MinCol: cell.Col, MinRow: cell.Row, MaxCol: cell.Col + 1, MaxRow: cell.Row + 1}
			first = false
			continue
		}
		if cell.Col < b.MinCol {
			b.MinCol = cell.Col
		}
		if cell.Row < b.MinRow {
			b.MinRow = cell.Row
		}
		if cell.Col+1 > b.MaxCol {
			b.MaxCol = cell.Col + 1
		}
		if cell.Row+1 > b.MaxRow {
			b.MaxRow = cell.Row + 1
		}
	}
	return b, nil
}

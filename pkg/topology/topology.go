// Package topology derives wall topology from grid-based room definitions.
//
// Rooms claim integer grid cells; walls appear wherever two adjacent cells
// belong to different rooms (or a room borders unclaimed space). The package
// turns a room list into a minimal set of straight wall segments in three
// steps:
//
//  1. BuildOccupancy: room list → cell ownership map
//  2. ExtractWalls: ownership map → one wall record per unit boundary edge
//  3. MergeCollinear: unit records → maximal contiguous segments
//
// Door openings are cut afterwards with CutDoor, which operates on the live
// segment list and is applied once per door spec.
//
// All coordinates are in grid space: one unit equals one cell. Converting to
// world coordinates is the job of package worldmap.
//
// The engine is pure and deterministic. Nothing survives a call; updating a
// plan means re-running the whole derivation.
package topology

import "math"

// Cell identifies one unit square in grid space. Cell (col, row) occupies
// [col, col+1] x [row, row+1].
type Cell struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Point is a grid-space coordinate. Values are integral for raw walls and may
// become fractional after door cutting.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Room is a named set of grid cells. Cell sets are not required to be
// contiguous or disjoint across rooms; on overlap the last room in the list
// wins (see BuildOccupancy).
type Room struct {
	Name  string `json:"name"`
	Cells []Cell `json:"cells"`
}

// Wall is one unit boundary edge together with the rooms on its two sides.
// A and B are stored in canonical order (lexicographically smaller point
// first) so both adjacent cells derive the identical edge. SideB is empty
// for exterior walls.
type Wall struct {
	A, B  Point
	SideA string
	SideB string
}

// Segment is a maximal straight run of contiguous walls sharing orientation,
// fixed coordinate and side-room identity. SideB is empty for exterior walls.
type Segment struct {
	Start Point  `json:"start"`
	End   Point  `json:"end"`
	SideA string `json:"side_a"`
	SideB string `json:"side_b,omitempty"`
}

// Length returns the segment length in grid units.
func (s Segment) Length() float64 {
	dx := s.End.X - s.Start.X
	dy := s.End.Y - s.Start.Y
	return math.Hypot(dx, dy)
}

// Matches reports whether the segment separates roomA and roomB, comparing
// the unordered side pair. An empty roomB matches exterior walls.
func (s Segment) Matches(roomA, roomB string) bool {
	return (s.SideA == roomA && s.SideB == roomB) || (s.SideA == roomB && s.SideB == roomA)
}

// sidePair is the unordered side-room identity of a wall. The zero value of
// either field stands for the exterior.
type sidePair struct {
	lo, hi string
}

func pairOf(a, b string) sidePair {
	if b < a {
		a, b = b, a
	}
	return sidePair{lo: a, hi: b}
}

// Bounds is the grid-space bounding box of an occupancy map. MaxCol and
// MaxRow are exclusive: a single cell at (0, 0) has bounds [0, 1) x [0, 1).
type Bounds struct {
	MinCol, MinRow int
	MaxCol, MaxRow int
}

// Width returns the bounding box width in grid units.
func (b Bounds) Width() int { return b.MaxCol - b.MinCol }

// Height returns the bounding box height in grid units.
func (b Bounds) Height() int { return b.MaxRow - b.MinRow }

// Package worldmap converts grid-space floor-plan geometry to world
// coordinates.
//
// The transform is a uniform scale plus translation: grid point (gx, gy)
// maps to origin + (gx, gy) * cellSize. There is no rotation. Room label
// anchors are the arithmetic mean of cell centers, which for concave or
// disjoint cell sets may fall outside the room; that is accepted behavior.
package worldmap

import "github.com/planwright/planwright/pkg/topology"

// Mapper applies the grid-to-world transform for one plan.
type Mapper struct {
	CellSize float64
	Origin   topology.Point
}

// New creates a mapper. A non-positive cellSize falls back to 1 so a zero
// value never collapses all geometry onto the origin.
func New(cellSize float64, origin topology.Point) Mapper {
	if cellSize <= 0 {
		cellSize = 1
	}
	return Mapper{CellSize: cellSize, Origin: origin}
}

// ToWorld maps a single grid point to world space.
func (m Mapper) ToWorld(p topology.Point) topology.Point {
	return topology.Point{
		X: m.Origin.X + p.X*m.CellSize,
		Y: m.Origin.Y + p.Y*m.CellSize,
	}
}

// Segments maps a grid-space segment list to world space, preserving order
// and side-room metadata.
func (m Mapper) Segments(segs []topology.Segment) []topology.Segment {
	out := make([]topology.Segment, len(segs))
	for i, s := range segs {
		out[i] = topology.Segment{
			Start: m.ToWorld(s.Start),
			End:   m.ToWorld(s.End),
			SideA: s.SideA,
			SideB: s.SideB,
		}
	}
	return out
}

// Labels returns one world-space label anchor per room: the centroid of the
// room's unit-cell centers, (col+0.5, row+0.5) averaged over all cells.
// Rooms without cells get no anchor.
func (m Mapper) Labels(rooms []topology.Room) map[string]topology.Point {
	labels := make(map[string]topology.Point, len(rooms))
	for _, room := range rooms {
		if len(room.Cells) == 0 {
			continue
		}
		var cx, cy float64
		for _, c := range room.Cells {
			cx += float64(c.Col) + 0.5
			cy += float64(c.Row) + 0.5
		}
		n := float64(len(room.Cells))
		labels[room.Name] = m.ToWorld(topology.Point{X: cx / n, Y: cy / n})
	}
	return labels
}

// Rect is a world-space axis-aligned bounding box.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns the box extent along X.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Depth returns the box extent along Y.
func (r Rect) Depth() float64 { return r.MaxY - r.MinY }

// Center returns the box center point.
func (r Rect) Center() topology.Point {
	return topology.Point{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// Rect maps a grid bounding box to a world-space rectangle.
func (m Mapper) Rect(b topology.Bounds) Rect {
	lo := m.ToWorld(topology.Point{X: float64(b.MinCol), Y: float64(b.MinRow)})
	hi := m.ToWorld(topology.Point{X: float64(b.MaxCol), Y: float64(b.MaxRow)})
	return Rect{MinX: lo.X, MinY: lo.Y, MaxX: hi.X, MaxY: hi.Y}
}

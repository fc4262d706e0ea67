package topology

import (
	"cmp"
	"slices"
)

// edge is a canonical unit-edge key: a is lexicographically smaller than b,
// so both adjacent cells derive the identical key for a shared boundary.
type edge struct {
	a, b Point
}

// sides records the rooms on the two sides of an edge at extraction time.
type sides struct {
	a, b string
}

// cellEdge pairs one boundary edge of a cell with the neighboring cell on
// the opposite side of that edge.
type cellEdge struct {
	edge     edge
	neighbor Cell
}

// cellEdges returns the four boundary edges of a cell (bottom, right, top,
// left), each paired with the cell across the edge.
func cellEdges(c Cell) [4]cellEdge {
	x, y := float64(c.Col), float64(c.Row)
	return [4]cellEdge{
		{edge: canonical(Point{x, y}, Point{x + 1, y}), neighbor: Cell{c.Col, c.Row - 1}},
		{edge: canonical(Point{x + 1, y}, Point{x + 1, y + 1}), neighbor: Cell{c.Col + 1, c.Row}},
		{edge: canonical(Point{x, y + 1}, Point{x + 1, y + 1}), neighbor: Cell{c.Col, c.Row + 1}},
		{edge: canonical(Point{x, y}, Point{x, y + 1}), neighbor: Cell{c.Col - 1, c.Row}},
	}
}

func canonical(p, q Point) edge {
	if q.X < p.X || (q.X == p.X && q.Y < p.Y) {
		p, q = q, p
	}
	return edge{a: p, b: q}
}

// ExtractWalls finds every unit boundary edge that separates two different
// rooms, or a room and unclaimed space. It returns one Wall per canonical
// edge; edges interior to a single room are never walls.
//
// The result does not depend on the order in which cells are visited: an
// edge between two cells of the same room is removed whenever either side is
// processed (removal of an absent key is a no-op), and the two derivations
// of a genuine wall agree because side order is irrelevant to wall identity.
// Go map iteration is deliberately relied on here to keep that property
// honest; the returned slice is sorted so output order is still stable.
func ExtractWalls(occ Occupancy) []Wall {
	records := make(map[edge]sides)
	for cell, room := range occ {
		for _, ce := range cellEdges(cell) {
			neighbor, claimed := occ[ce.neighbor]
			if claimed && neighbor == room {
				// Interior to the room: never a wall, no matter
				// which side was seen first.
				delete(records, ce.edge)
				continue
			}
			if _, exists := records[ce.edge]; !exists {
				records[ce.edge] = sides{a: room, b: neighbor}
			}
		}
	}

	walls := make([]Wall, 0, len(records))
	for e, s := range records {
		walls = append(walls, Wall{A: e.a, B: e.b, SideA: s.a, SideB: s.b})
	}
	slices.SortFunc(walls, compareWalls)
	return walls
}

func compareWalls(a, b Wall) int {
	if c := cmp.Compare(a.A.X, b.A.X); c != 0 {
		return c
	}
	if c := cmp.Compare(a.A.Y, b.A.Y); c != 0 {
		return c
	}
	if c := cmp.Compare(a.B.X, b.B.X); c != 0 {
		return c
	}
	return cmp.Compare(a.B.Y, b.B.Y)
}

package topology

import "slices"

// subSegmentEpsilon drops door remainders whose length rounds to roughly
// zero, so degenerate stubs never reach downstream construction.
const subSegmentEpsilon = 0.001

// Door requests a passage between two named sides.
//
// Between holds the room on each side of the opening; an empty second entry
// means the door opens to the exterior. Position is the opening center as a
// ratio along the chosen wall segment, clamped to [0, 1]. Width is in world
// units and is converted to grid units using the plan's cell size.
type Door struct {
	Between  []string `json:"between"`
	Position float64  `json:"position"`
	Width    float64  `json:"width"`
}

// CutDoor cuts one door opening into the segment list and returns the
// updated list. It is intended to be applied sequentially, once per door:
// each call selects its target against whatever the previous cuts left
// behind, so the order of door requests on a shared wall determines which
// remaining sub-segment receives a later opening.
//
// Selection picks the longest segment whose unordered side pair matches the
// door's Between entry, ties broken by list order. A door at least as wide
// as its wall removes the segment entirely. Malformed specs (fewer than two
// side references) and doors between non-adjacent rooms are silent no-ops.
func CutDoor(segments []Segment, door Door, cellSize float64) []Segment {
	if len(door.Between) < 2 {
		return segments
	}
	roomA, roomB := door.Between[0], door.Between[1]

	best := -1
	bestLen := 0.0
	for i, seg := range segments {
		if !seg.Matches(roomA, roomB) {
			continue
		}
		if l := seg.Length(); best < 0 || l > bestLen {
			best, bestLen = i, l
		}
	}
	if best < 0 {
		return segments
	}

	gridWidth := door.Width / cellSize
	if gridWidth >= bestLen {
		// Door consumes the whole wall, no stub remains.
		return slices.Delete(segments, best, best+1)
	}

	seg := segments[best]
	dx := seg.End.X - seg.Start.X
	dy := seg.End.Y - seg.Start.Y

	tCenter := min(1, max(0, door.Position))
	half := gridWidth / (2 * bestLen)
	tStart := max(0, tCenter-half)
	tEnd := min(1, tCenter+half)

	var parts []Segment
	if tStart > subSegmentEpsilon {
		parts = append(parts, Segment{
			Start: seg.Start,
			End:   Point{X: seg.Start.X + dx*tStart, Y: seg.Start.Y + dy*tStart},
			SideA: seg.SideA,
			SideB: seg.SideB,
		})
	}
	if tEnd < 1-subSegmentEpsilon {
		parts = append(parts, Segment{
			Start: Point{X: seg.Start.X + dx*tEnd, Y: seg.Start.Y + dy*tEnd},
			End:   seg.End,
			SideA: seg.SideA,
			SideB: seg.SideB,
		})
	}

	segments = slices.Delete(segments, best, best+1)
	return slices.Insert(segments, best, parts...)
}

// Walls runs the full grid-space derivation: occupancy, wall extraction,
// collinear merging, then one cut per door in order. It returns ErrNoCells
// when the room list claims no cells.
func Walls(rooms []Room, doors []Door, cellSize float64) ([]Segment, error) {
	occ := BuildOccupancy(rooms)
	if len(occ) == 0 {
		return nil, ErrNoCells
	}
	segments := MergeCollinear(ExtractWalls(occ))
	for _, door := range doors {
		segments = CutDoor(segments, door, cellSize)
	}
	return segments, nil
}

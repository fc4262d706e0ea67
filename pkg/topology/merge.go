package topology

import (
	"cmp"
	"slices"
)

// interval is one wall projected onto its variable axis, keeping the side
// rooms of the first record so merged segments inherit them.
type interval struct {
	start, end float64
	sideA      string
	sideB      string
}

// groupKey partitions walls that are allowed to merge: same orientation,
// same fixed coordinate, same unordered side-room pair.
type groupKey struct {
	horizontal bool
	fixed      float64
	pair       sidePair
}

// MergeCollinear collapses unit wall records into maximal contiguous
// segments. Walls merge only when they share orientation, the fixed
// coordinate, and the unordered side-room pair; within a group, intervals
// are sorted by their variable coordinate and joined while the next start
// does not pass the current end.
//
// Without this step a wall along an entire room edge would be emitted as one
// tiny segment per cell. Merged output satisfies three invariants: no two
// segments overlap, a segment's two sides are never the same room, and no
// zero-length segment is emitted.
func MergeCollinear(walls []Wall) []Segment {
	groups := make(map[groupKey][]interval)
	for _, w := range walls {
		switch {
		case w.A.Y == w.B.Y: // horizontal
			key := groupKey{horizontal: true, fixed: w.A.Y, pair: pairOf(w.SideA, w.SideB)}
			groups[key] = append(groups[key], interval{
				start: min(w.A.X, w.B.X),
				end:   max(w.A.X, w.B.X),
				sideA: w.SideA,
				sideB: w.SideB,
			})
		case w.A.X == w.B.X: // vertical
			key := groupKey{horizontal: false, fixed: w.A.X, pair: pairOf(w.SideA, w.SideB)}
			groups[key] = append(groups[key], interval{
				start: min(w.A.Y, w.B.Y),
				end:   max(w.A.Y, w.B.Y),
				sideA: w.SideA,
				sideB: w.SideB,
			})
		}
	}

	keys := make([]groupKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, compareGroupKeys)

	var merged []Segment
	for _, key := range keys {
		merged = append(merged, mergeGroup(key, groups[key])...)
	}
	return merged
}

// mergeGroup joins touching or overlapping intervals of one group in
// ascending coordinate order and emits one segment per contiguous run.
func mergeGroup(key groupKey, ivs []interval) []Segment {
	slices.SortFunc(ivs, func(a, b interval) int {
		if c := cmp.Compare(a.start, b.start); c != 0 {
			return c
		}
		return cmp.Compare(a.end, b.end)
	})

	var segs []Segment
	cur := ivs[0]
	for _, next := range ivs[1:] {
		if next.start <= cur.end {
			cur.end = max(cur.end, next.end)
			continue
		}
		segs = append(segs, key.segment(cur))
		cur = next
	}
	return append(segs, key.segment(cur))
}

func (k groupKey) segment(iv interval) Segment {
	if k.horizontal {
		return Segment{
			Start: Point{X: iv.start, Y: k.fixed},
			End:   Point{X: iv.end, Y: k.fixed},
			SideA: iv.sideA,
			SideB: iv.sideB,
		}
	}
	return Segment{
		Start: Point{X: k.fixed, Y: iv.start},
		End:   Point{X: k.fixed, Y: iv.end},
		SideA: iv.sideA,
		SideB: iv.sideB,
	}
}

func compareGroupKeys(a, b groupKey) int {
	// Horizontal groups first, then by fixed coordinate, then by side pair.
	if a.horizontal != b.horizontal {
		if a.horizontal {
			return -1
		}
		return 1
	}
	if c := cmp.Compare(a.fixed, b.fixed); c != 0 {
		return c
	}
	if c := cmp.Compare(a.pair.lo, b.pair.lo); c != 0 {
		return c
	}
	return cmp.Compare(a.pair.hi, b.pair.hi)
}

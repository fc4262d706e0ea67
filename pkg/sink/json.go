package sink

import (
	"encoding/json"
	"maps"
	"slices"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	plan       string
	namePrefix string
	cellSize   float64
	doorCount  int
}

// WithJSONPlan records the plan name in the JSON output.
func WithJSONPlan(name string) JSONOption { return func(r *jsonRenderer) { r.plan = name } }

// WithJSONNamePrefix names the emitted objects for downstream modeling
// tools: the wall collection becomes "<prefix>_Walls" and each label anchor
// "<prefix>_<room>".
func WithJSONNamePrefix(prefix string) JSONOption {
	return func(r *jsonRenderer) { r.namePrefix = prefix }
}

// WithJSONCellSize records the grid cell size used to produce the scene,
// enabling consumers to recover grid coordinates from world coordinates.
func WithJSONCellSize(size float64) JSONOption {
	return func(r *jsonRenderer) { r.cellSize = size }
}

// WithJSONDoorCount records how many door openings were cut into the walls.
func WithJSONDoorCount(n int) JSONOption { return func(r *jsonRenderer) { r.doorCount = n } }

type jsonOutput struct {
	Plan        string      `json:"plan,omitempty"`
	WallsObject string      `json:"walls_object,omitempty"`
	CellSize    float64     `json:"cell_size,omitempty"`
	Bounds      jsonRect    `json:"bounds"`
	RoomCount   int         `json:"room_count"`
	WallCount   int         `json:"wall_count"`
	DoorCount   int         `json:"door_count,omitempty"`
	Walls       []jsonWall  `json:"walls"`
	Labels      []jsonLabel `json:"labels,omitempty"`
}

type jsonRect struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

type jsonWall struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	SideA string  `json:"side_a"`
	SideB string  `json:"side_b,omitempty"`
}

type jsonLabel struct {
	Room   string  `json:"room"`
	Object string  `json:"object,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// RenderJSON exports the scene as a pretty-printed JSON document. This is the
// primary data interchange format, enabling:
//
//   - Integration with downstream modeling or rendering tools
//   - Caching computed wall maps for fast re-rendering
//   - Diffing plan revisions by their geometry
//
// Walls keep their input order; labels are sorted by room name so output is
// deterministic. RenderJSON returns an error only if JSON marshaling fails.
// It does not modify the scene and is safe to call concurrently.
func RenderJSON(s Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Plan:     r.plan,
		CellSize: r.cellSize,
		Bounds: jsonRect{
			MinX: s.Bounds.MinX, MinY: s.Bounds.MinY,
			MaxX: s.Bounds.MaxX, MaxY: s.Bounds.MaxY,
		},
		RoomCount: len(s.Labels),
		WallCount: len(s.Segments),
		DoorCount: r.doorCount,
		Walls:     buildJSONWalls(s),
		Labels:    buildJSONLabels(s, r.namePrefix),
	}
	if r.namePrefix != "" {
		out.WallsObject = r.namePrefix + "_Walls"
	}

	return json.MarshalIndent(out, "", "  ")
}

func buildJSONWalls(s Scene) []jsonWall {
	walls := make([]jsonWall, 0, len(s.Segments))
	for _, seg := range s.Segments {
		walls = append(walls, jsonWall{
			X1: seg.Start.X, Y1: seg.Start.Y,
			X2: seg.End.X, Y2: seg.End.Y,
			SideA: seg.SideA,
			SideB: seg.SideB,
		})
	}
	return walls
}

func buildJSONLabels(s Scene, namePrefix string) []jsonLabel {
	labels := make([]jsonLabel, 0, len(s.Labels))
	for _, room := range slices.Sorted(maps.Keys(s.Labels)) {
		p := s.Labels[room]
		label := jsonLabel{Room: room, X: p.X, Y: p.Y}
		if namePrefix != "" {
			label.Object = namePrefix + "_" + room
		}
		labels = append(labels, label)
	}
	return labels
}

// Package plan defines the caller-facing floor-plan contract: named rooms as
// grid cell sets, door specs, grid scale, world origin and presentation
// options. A Plan is plain data; deriving wall topology from it is the job
// of pkg/topology and pkg/pipeline.
package plan

import (
	"github.com/planwright/planwright/pkg/errors"
	"github.com/planwright/planwright/pkg/topology"
)

// Defaults applied by ValidateAndSetDefaults. Lengths are in world units
// (centimetres at the default scale: one cell is one metre).
const (
	DefaultCellSize   = 100.0
	DefaultDoorWidth  = 90.0
	DefaultDoorRatio  = 0.5
	DefaultLabelSize  = 20.0
	DefaultNamePrefix = "FP"
)

// Plan is one complete floor-plan definition.
// This struct supports JSON serialization for API requests and decodes from
// TOML plan files as well.
type Plan struct {
	Name     string     `json:"name,omitempty" toml:"name"`
	CellSize float64    `json:"cell_size,omitempty" toml:"cell_size"`
	Origin   [2]float64 `json:"origin,omitempty" toml:"origin"`
	Rooms    []Room     `json:"rooms" toml:"rooms"`
	Doors    []Door     `json:"doors,omitempty" toml:"doors"`
	Options  Options    `json:"options,omitempty" toml:"options"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Room is a named set of grid cells, each cell a [col, row] pair.
type Room struct {
	Name  string   `json:"name" toml:"name"`
	Cells [][2]int `json:"cells" toml:"cells"`
}

// Door requests an opening between two named sides. In JSON, Between is
// ["RoomA", "RoomB"] or ["RoomA", null] for an exterior door; null decodes
// to the empty string. Position nil means centered (0.5); Width zero means
// DefaultDoorWidth.
type Door struct {
	Between  []string `json:"between" toml:"between"`
	Position *float64 `json:"position,omitempty" toml:"position"`
	Width    float64  `json:"width,omitempty" toml:"width"`
}

// Options carries presentation settings consumed by the output sinks.
type Options struct {
	NamePrefix string    `json:"name_prefix,omitempty" toml:"name_prefix"`
	ShowLabels *bool     `json:"show_labels,omitempty" toml:"show_labels"`
	LabelSize  float64   `json:"label_size,omitempty" toml:"label_size"`
	WallColor  *[3]uint8 `json:"wall_color,omitempty" toml:"wall_color"`
	LabelColor *[3]uint8 `json:"label_color,omitempty" toml:"label_color"`
}

// LabelsEnabled reports whether room labels should be emitted (default true).
func (o Options) LabelsEnabled() bool {
	return o.ShowLabels == nil || *o.ShowLabels
}

// WallRGB returns the wall color, defaulting to near-black.
func (o Options) WallRGB() [3]uint8 {
	if o.WallColor != nil {
		return *o.WallColor
	}
	return [3]uint8{30, 30, 30}
}

// LabelRGB returns the label color, defaulting to dark gray.
func (o Options) LabelRGB() [3]uint8 {
	if o.LabelColor != nil {
		return *o.LabelColor
	}
	return [3]uint8{80, 80, 80}
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
//
// An empty room list is the one hard input-shape failure: there is nothing
// sensible to build from zero rooms. Overlapping cell claims, doors between
// non-adjacent rooms and malformed door specs are deliberately NOT rejected
// here; those are soft conditions the engine absorbs.
func (p *Plan) ValidateAndSetDefaults() error {
	if p.validated {
		return nil
	}

	if len(p.Rooms) == 0 {
		return errors.New(errors.ErrCodeNoRooms, "plan defines no rooms")
	}
	if err := errors.ValidatePlanName(p.Name); err != nil {
		return err
	}
	for _, room := range p.Rooms {
		if err := errors.ValidateRoomName(room.Name); err != nil {
			return err
		}
	}

	if p.CellSize <= 0 {
		p.CellSize = DefaultCellSize
	}
	for i := range p.Doors {
		if p.Doors[i].Width <= 0 {
			p.Doors[i].Width = DefaultDoorWidth
		}
	}
	if p.Options.NamePrefix == "" {
		p.Options.NamePrefix = DefaultNamePrefix
	}
	if p.Options.LabelSize <= 0 {
		p.Options.LabelSize = DefaultLabelSize
	}

	p.validated = true
	return nil
}

// TopologyRooms converts the room list to the engine's representation.
func (p *Plan) TopologyRooms() []topology.Room {
	rooms := make([]topology.Room, len(p.Rooms))
	for i, r := range p.Rooms {
		cells := make([]topology.Cell, len(r.Cells))
		for j, c := range r.Cells {
			cells[j] = topology.Cell{Col: c[0], Row: c[1]}
		}
		rooms[i] = topology.Room{Name: r.Name, Cells: cells}
	}
	return rooms
}

// TopologyDoors converts the door list to the engine's representation,
// resolving the centered-position default.
func (p *Plan) TopologyDoors() []topology.Door {
	doors := make([]topology.Door, len(p.Doors))
	for i, d := range p.Doors {
		position := DefaultDoorRatio
		if d.Position != nil {
			position = *d.Position
		}
		doors[i] = topology.Door{Between: d.Between, Position: position, Width: d.Width}
	}
	return doors
}

// OriginPoint returns the world-space origin as a point.
func (p *Plan) OriginPoint() topology.Point {
	return topology.Point{X: p.Origin[0], Y: p.Origin[1]}
}

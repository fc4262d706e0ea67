package sink

import (
	"github.com/planwright/planwright/pkg/topology"
	"github.com/planwright/planwright/pkg/worldmap"
)

// Scene is the world-space input shared by all renderers.
type Scene struct {
	// Segments are the merged wall segments in world coordinates, with
	// side-room metadata intact.
	Segments []topology.Segment

	// Labels maps room names to their world-space label anchors.
	Labels map[string]topology.Point

	// Bounds is the world-space bounding box of the occupied grid.
	Bounds worldmap.Rect
}

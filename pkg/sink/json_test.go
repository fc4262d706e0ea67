package sink

import (
	"encoding/json"
	"testing"

	"github.com/planwright/planwright/pkg/topology"
	"github.com/planwright/planwright/pkg/worldmap"
)

func testScene() Scene {
	return Scene{
		Segments: []topology.Segment{
			{Start: topology.Point{X: 0, Y: 0}, End: topology.Point{X: 200, Y: 0}, SideA: "Kitchen"},
			{Start: topology.Point{X: 100, Y: 0}, End: topology.Point{X: 100, Y: 100}, SideA: "Kitchen", SideB: "Hall"},
		},
		Labels: map[string]topology.Point{
			"Kitchen": {X: 50, Y: 50},
			"Hall":    {X: 150, Y: 50},
		},
		Bounds: worldmap.Rect{MinX: 0, MinY: 0, MaxX: 200, MaxY: 100},
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testScene(),
		WithJSONPlan("apartment"),
		WithJSONCellSize(100),
		WithJSONDoorCount(1),
	)
	if err != nil {
		t.Fatalf("RenderJSON error: %v", err)
	}

	var out struct {
		Plan      string  `json:"plan"`
		CellSize  float64 `json:"cell_size"`
		RoomCount int     `json:"room_count"`
		WallCount int     `json:"wall_count"`
		DoorCount int     `json:"door_count"`
		Bounds    struct {
			MaxX float64 `json:"max_x"`
		} `json:"bounds"`
		Walls []struct {
			X1    float64 `json:"x1"`
			SideA string  `json:"side_a"`
			SideB string  `json:"side_b"`
		} `json:"walls"`
		Labels []struct {
			Room string  `json:"room"`
			X    float64 `json:"x"`
		} `json:"labels"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if out.Plan != "apartment" || out.CellSize != 100 {
		t.Errorf("plan=%q cell_size=%v, want apartment/100", out.Plan, out.CellSize)
	}
	if out.RoomCount != 2 || out.WallCount != 2 || out.DoorCount != 1 {
		t.Errorf("counts = %d/%d/%d, want 2/2/1", out.RoomCount, out.WallCount, out.DoorCount)
	}
	if out.Bounds.MaxX != 200 {
		t.Errorf("bounds.max_x = %v, want 200", out.Bounds.MaxX)
	}

	// Wall order preserved, exterior side omitted on the first wall
	if len(out.Walls) != 2 {
		t.Fatalf("got %d walls, want 2", len(out.Walls))
	}
	if out.Walls[0].SideA != "Kitchen" || out.Walls[0].SideB != "" {
		t.Errorf("wall[0] sides = %q/%q, want Kitchen/exterior", out.Walls[0].SideA, out.Walls[0].SideB)
	}
	if out.Walls[1].SideB != "Hall" {
		t.Errorf("wall[1] side_b = %q, want Hall", out.Walls[1].SideB)
	}

	// Labels sorted by room name
	if len(out.Labels) != 2 || out.Labels[0].Room != "Hall" || out.Labels[1].Room != "Kitchen" {
		t.Errorf("labels not sorted by room: %+v", out.Labels)
	}
}

func TestRenderJSONNamePrefix(t *testing.T) {
	data, err := RenderJSON(testScene(), WithJSONNamePrefix("FP"))
	if err != nil {
		t.Fatalf("RenderJSON error: %v", err)
	}

	var out struct {
		WallsObject string `json:"walls_object"`
		Labels      []struct {
			Room   string `json:"room"`
			Object string `json:"object"`
		} `json:"labels"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if out.WallsObject != "FP_Walls" {
		t.Errorf("walls_object = %q, want FP_Walls", out.WallsObject)
	}
	if len(out.Labels) != 2 || out.Labels[0].Object != "FP_Hall" || out.Labels[1].Object != "FP_Kitchen" {
		t.Errorf("label objects = %+v, want FP_Hall and FP_Kitchen", out.Labels)
	}

	// Without a prefix the object names stay out of the document
	plain, err := RenderJSON(testScene())
	if err != nil {
		t.Fatalf("RenderJSON error: %v", err)
	}
	var bare map[string]any
	if err := json.Unmarshal(plain, &bare); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if _, ok := bare["walls_object"]; ok {
		t.Error("walls_object should be omitted when no prefix is set")
	}
}

func TestRenderJSONMinimal(t *testing.T) {
	data, err := RenderJSON(Scene{})
	if err != nil {
		t.Fatalf("RenderJSON error: %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if _, ok := out["plan"]; ok {
		t.Error("plan should be omitted when unset")
	}
	if _, ok := out["door_count"]; ok {
		t.Error("door_count should be omitted when zero")
	}
}

package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/planwright/planwright/pkg/cache"
	"github.com/planwright/planwright/pkg/errors"
	"github.com/planwright/planwright/pkg/plan"
)

func testPlan() *plan.Plan {
	return &plan.Plan{
		Name: "loft",
		Rooms: []plan.Room{
			{Name: "Kitchen", Cells: [][2]int{{0, 0}}},
			{Name: "Hall", Cells: [][2]int{{1, 0}}},
		},
		Doors: []plan.Door{
			{Between: []string{"Kitchen", "Hall"}, Width: 50},
		},
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	t.Run("nil plan", func(t *testing.T) {
		opts := Options{}
		if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidPlan) {
			t.Errorf("got %v, want INVALID_PLAN", err)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		opts := Options{Plan: testPlan()}
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
			t.Errorf("formats = %v, want [json]", opts.Formats)
		}
		if opts.Plan.CellSize != plan.DefaultCellSize {
			t.Errorf("plan defaults not applied: cell_size = %v", opts.Plan.CellSize)
		}
		if opts.Logger == nil {
			t.Error("logger default not applied")
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		opts := Options{Plan: testPlan(), Formats: []string{"pdf"}}
		if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("got %v, want INVALID_FORMAT", err)
		}
	})

	t.Run("no rooms", func(t *testing.T) {
		opts := Options{Plan: &plan.Plan{}}
		if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeNoRooms) {
			t.Errorf("got %v, want NO_ROOMS", err)
		}
	})
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(ctx, Options{
		Plan:    testPlan(),
		Formats: []string{FormatJSON, FormatSVG, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if result.RunID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("RunID not assigned")
	}
	if result.PlanHash == "" {
		t.Error("PlanHash not computed")
	}
	if result.Stats.RoomCount != 2 || result.Stats.DoorCount != 1 {
		t.Errorf("stats = %d rooms %d doors, want 2/1", result.Stats.RoomCount, result.Stats.DoorCount)
	}

	// Two unit rooms side by side with a door in the shared wall: the door
	// splits the shared wall into two stubs, so 6 perimeter walls + 2 stubs.
	if result.Stats.SegmentCount != 8 {
		t.Errorf("segment count = %d, want 8", result.Stats.SegmentCount)
	}
	if len(result.Scene.Labels) != 2 {
		t.Errorf("got %d labels, want 2", len(result.Scene.Labels))
	}

	for _, format := range []string{FormatJSON, FormatSVG, FormatDOT} {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("missing %s artifact", format)
		}
	}

	var doc struct {
		Plan        string `json:"plan"`
		WallsObject string `json:"walls_object"`
		WallCount   int    `json:"wall_count"`
	}
	if err := json.Unmarshal(result.Artifacts[FormatJSON], &doc); err != nil {
		t.Fatalf("JSON artifact invalid: %v", err)
	}
	if doc.Plan != "loft" || doc.WallCount != 8 {
		t.Errorf("JSON artifact plan=%q walls=%d, want loft/8", doc.Plan, doc.WallCount)
	}
	if doc.WallsObject != "FP_Walls" {
		t.Errorf("walls_object = %q, want default prefix FP_Walls", doc.WallsObject)
	}
	if !strings.Contains(string(result.Artifacts[FormatSVG]), `id="FP_Walls"`) {
		t.Error("SVG artifact missing prefixed wall group id")
	}

	if !strings.Contains(string(result.Artifacts[FormatDOT]), `"Hall" -- "Kitchen"`) {
		t.Error("DOT artifact missing adjacency edge")
	}
}

func TestExecuteCaching(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	opts := Options{Plan: testPlan(), Formats: []string{FormatJSON}}

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute error: %v", err)
	}
	if first.CacheInfo.TopologyHit || first.CacheInfo.RenderHit {
		t.Error("first run should not hit the cache")
	}

	second, err := runner.Execute(ctx, Options{Plan: testPlan(), Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatalf("second Execute error: %v", err)
	}
	if !second.CacheInfo.TopologyHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit the cache: %+v", second.CacheInfo)
	}
	if string(first.Artifacts[FormatJSON]) != string(second.Artifacts[FormatJSON]) {
		t.Error("cached artifact differs from computed artifact")
	}

	// Refresh bypasses cache reads
	third, err := runner.Execute(ctx, Options{Plan: testPlan(), Formats: []string{FormatJSON}, Refresh: true})
	if err != nil {
		t.Fatalf("refresh Execute error: %v", err)
	}
	if third.CacheInfo.TopologyHit || third.CacheInfo.RenderHit {
		t.Error("refresh run should not hit the cache")
	}
}

func TestPlanHash(t *testing.T) {
	base := Options{Plan: testPlan()}
	if err := base.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	h1 := PlanHash(base)

	// Presentation options do not change the hash
	styled := Options{Plan: testPlan()}
	styled.Plan.Options.NamePrefix = "ROOM"
	if err := styled.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if PlanHash(styled) != h1 {
		t.Error("presentation options should not change the plan hash")
	}

	// Geometry changes do
	moved := Options{Plan: testPlan()}
	moved.Plan.Rooms[1].Cells = [][2]int{{2, 0}}
	if err := moved.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if PlanHash(moved) == h1 {
		t.Error("geometry changes should change the plan hash")
	}
}

func TestTopologyStage(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	segments, err := runner.Topology(ctx, Options{Plan: testPlan()})
	if err != nil {
		t.Fatalf("Topology error: %v", err)
	}
	if len(segments) != 8 {
		t.Errorf("got %d segments, want 8", len(segments))
	}
}

package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/planwright/planwright/pkg/pipeline"
)

func testServer() *Server {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	return NewServer(pipeline.NewRunner(nil, nil, logger), logger)
}

func TestHealthz(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestBuildPlan(t *testing.T) {
	srv := testServer()

	payload := `{
		"plan": {
			"name": "loft",
			"rooms": [
				{"name": "Kitchen", "cells": [[0,0]]},
				{"name": "Hall", "cells": [[1,0]]}
			],
			"doors": [
				{"between": ["Kitchen", "Hall"], "width": 50}
			]
		},
		"formats": ["json", "svg"]
	}`

	req := httptest.NewRequest(http.MethodPost, "/v1/plans", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		RunID    string `json:"run_id"`
		PlanHash string `json:"plan_hash"`
		Stats    struct {
			RoomCount    int `json:"room_count"`
			SegmentCount int `json:"segment_count"`
		} `json:"stats"`
		Artifacts map[string][]byte `json:"artifacts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if body.RunID == "" || body.PlanHash == "" {
		t.Error("run_id and plan_hash should be set")
	}
	if body.Stats.RoomCount != 2 || body.Stats.SegmentCount != 8 {
		t.Errorf("stats = %+v, want 2 rooms / 8 segments", body.Stats)
	}
	if len(body.Artifacts["json"]) == 0 || len(body.Artifacts["svg"]) == 0 {
		t.Error("artifacts missing")
	}
	if !strings.HasPrefix(string(body.Artifacts["svg"]), "<svg") {
		t.Error("svg artifact should be an SVG document")
	}
}

func TestBuildPlanErrors(t *testing.T) {
	srv := testServer()

	tests := []struct {
		name     string
		payload  string
		wantCode int
		wantErr  string
	}{
		{
			name:     "malformed body",
			payload:  `{not json`,
			wantCode: http.StatusBadRequest,
			wantErr:  "INVALID_PLAN",
		},
		{
			name:     "no rooms",
			payload:  `{"plan": {"rooms": []}}`,
			wantCode: http.StatusBadRequest,
			wantErr:  "NO_ROOMS",
		},
		{
			name:     "invalid format",
			payload:  `{"plan": {"rooms": [{"name": "A", "cells": [[0,0]]}]}, "formats": ["pdf"]}`,
			wantCode: http.StatusBadRequest,
			wantErr:  "INVALID_FORMAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/plans", strings.NewReader(tt.payload))
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			var body errorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body.Error.Code != tt.wantErr {
				t.Errorf("error code = %q, want %q", body.Error.Code, tt.wantErr)
			}
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodGet, "/v1/unknown", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

// Package api exposes the planwright pipeline over HTTP.
//
// The surface is deliberately small: POST /v1/plans runs the pipeline on a
// JSON plan and returns the artifacts; GET /healthz reports liveness. The
// server is stateless, so it scales horizontally behind a shared Redis cache.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/planwright/planwright/pkg/buildinfo"
	"github.com/planwright/planwright/pkg/errors"
	"github.com/planwright/planwright/pkg/observability"
	"github.com/planwright/planwright/pkg/pipeline"
	"github.com/planwright/planwright/pkg/plan"
)

// Server handles HTTP requests for the plan pipeline.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// NewServer creates a server around the given runner.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/plans", s.handleBuildPlan)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// buildRequest is the POST /v1/plans request body.
type buildRequest struct {
	Plan    plan.Plan `json:"plan"`
	Formats []string  `json:"formats,omitempty"`
	Refresh bool      `json:"refresh,omitempty"`
}

// buildResponse is the POST /v1/plans response body. Artifact bytes are
// base64-encoded by the JSON encoder.
type buildResponse struct {
	RunID     string             `json:"run_id"`
	PlanHash  string             `json:"plan_hash"`
	Stats     buildStats         `json:"stats"`
	Cache     pipeline.CacheInfo `json:"cache"`
	Artifacts map[string][]byte  `json:"artifacts"`
}

type buildStats struct {
	RoomCount    int    `json:"room_count"`
	DoorCount    int    `json:"door_count"`
	SegmentCount int    `json:"segment_count"`
	TopologyMS   int64  `json:"topology_ms"`
	MapMS        int64  `json:"map_ms"`
	RenderMS     int64  `json:"render_ms"`
	Duration     string `json:"duration"`
}

func (s *Server) handleBuildPlan(w http.ResponseWriter, r *http.Request) {
	var req buildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidPlan, err, "decode request body"))
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Plan:    &req.Plan,
		Formats: req.Formats,
		Refresh: req.Refresh,
		Logger:  s.logger,
	})
	if err != nil {
		observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
		writeError(w, err)
		return
	}

	total := result.Stats.TopologyTime + result.Stats.MapTime + result.Stats.RenderTime
	writeJSON(w, http.StatusOK, buildResponse{
		RunID:    result.RunID.String(),
		PlanHash: result.PlanHash,
		Stats: buildStats{
			RoomCount:    result.Stats.RoomCount,
			DoorCount:    result.Stats.DoorCount,
			SegmentCount: result.Stats.SegmentCount,
			TopologyMS:   result.Stats.TopologyTime.Milliseconds(),
			MapMS:        result.Stats.MapTime.Milliseconds(),
			RenderMS:     result.Stats.RenderTime.Milliseconds(),
			Duration:     total.String(),
		},
		Cache:     result.CacheInfo,
		Artifacts: result.Artifacts,
	})
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	var body errorBody
	body.Error.Code = string(errors.GetCode(err))
	body.Error.Message = errors.UserMessage(err)
	if body.Error.Code == "" {
		body.Error.Code = string(errors.ErrCodeInternal)
	}
	writeJSON(w, statusFor(err), body)
}

func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidPlan, errors.ErrCodeNoRooms,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidRoom:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// logRequests emits one structured log line per request and feeds the HTTP
// observability hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), elapsed)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", elapsed)
	})
}

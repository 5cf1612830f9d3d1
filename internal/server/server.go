// Package server is the local development server exposing the design
// pipeline over a small JSON API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/heliosworks/habplanner/pkg/constraints"
	"github.com/heliosworks/habplanner/pkg/generator"
	"github.com/heliosworks/habplanner/pkg/habitat"
	"github.com/heliosworks/habplanner/pkg/optimizer"
	"github.com/heliosworks/habplanner/pkg/scoring"
)

const maxOptimizeIterations = 20000

// Server wraps the generate, validate, score, and optimize entry
// points behind HTTP handlers. Every request runs against the default
// constraint settings; per-request overrides are accepted for weights
// only.
type Server struct {
	port     int
	log      *zap.Logger
	settings habitat.ConstraintSettings
}

// New creates a server listening on the given port.
func New(port int, logger *zap.Logger) *Server {
	return &Server{
		port:     port,
		log:      logger,
		settings: habitat.DefaultSettings(),
	}
}

// Start launches the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.log.Info("habplanner server starting",
		zap.String("addr", "http://localhost"+addr))

	return http.ListenAndServe(addr, s.Handler())
}

// Handler builds the route table. Split out from Start so tests can
// drive it through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("POST /api/validate", s.handleValidate)
	mux.HandleFunc("POST /api/score", s.handleScore)
	mux.HandleFunc("POST /api/optimize", s.handleOptimize)
	mux.HandleFunc("GET /api/defaults", s.handleDefaults)
	mux.HandleFunc("GET /", s.handleIndex)

	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>habplanner</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>habplanner</h1>
<p>POST a mission config to <code>/api/generate</code>, or a layout to <code>/api/validate</code>, <code>/api/score</code>, <code>/api/optimize</code>.</p>
</div>
</body></html>`)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()

	var cfg generator.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		s.writeError(w, reqID, http.StatusBadRequest, fmt.Errorf("parsing config: %w", err))
		return
	}

	layout, err := generator.Generate(cfg, s.settings)
	if err != nil {
		var cfgErr *generator.ConfigError
		var infErr *generator.InfeasibleError
		if errors.As(err, &cfgErr) || errors.As(err, &infErr) {
			s.writeError(w, reqID, http.StatusUnprocessableEntity, err)
		} else {
			s.writeError(w, reqID, http.StatusInternalServerError, err)
		}
		return
	}

	s.log.Info("layout generated",
		zap.String("request_id", reqID),
		zap.Int("crew", cfg.Crew),
		zap.Int64("seed", cfg.Seed))
	s.writeJSON(w, http.StatusOK, layout)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()

	layout, ok := s.decodeLayout(w, r, reqID)
	if !ok {
		return
	}

	result := constraints.Validate(layout, s.settings)
	s.log.Info("layout validated",
		zap.String("request_id", reqID),
		zap.Bool("passed", result.Passed),
		zap.Int("failed_rules", len(result.FailedRules)))
	s.writeJSON(w, http.StatusOK, result)
}

type scoreRequest struct {
	Layout  *habitat.Layout       `json:"layout"`
	Weights *habitat.ScoreWeights `json:"weights,omitempty"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()

	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, reqID, http.StatusBadRequest, fmt.Errorf("parsing request: %w", err))
		return
	}
	if req.Layout == nil {
		s.writeError(w, reqID, http.StatusBadRequest, errors.New("missing layout"))
		return
	}
	if err := req.Layout.Validate(); err != nil {
		s.writeError(w, reqID, http.StatusBadRequest, err)
		return
	}

	weights := habitat.DefaultWeights()
	if req.Weights != nil {
		weights = *req.Weights
	}

	metrics, score, err := scoring.Evaluate(req.Layout, s.settings, weights)
	if err != nil {
		s.writeError(w, reqID, http.StatusBadRequest, err)
		return
	}

	s.log.Info("layout scored",
		zap.String("request_id", reqID),
		zap.Float64("score", score),
		zap.Bool("feasible", metrics.Feasibility))
	s.writeJSON(w, http.StatusOK, map[string]any{"metrics": metrics, "score": score})
}

type optimizeRequest struct {
	Layout     *habitat.Layout       `json:"layout"`
	Iterations int                   `json:"iterations"`
	Seed       int64                 `json:"seed,omitempty"`
	Weights    *habitat.ScoreWeights `json:"weights,omitempty"`
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()

	var req optimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, reqID, http.StatusBadRequest, fmt.Errorf("parsing request: %w", err))
		return
	}
	if req.Layout == nil {
		s.writeError(w, reqID, http.StatusBadRequest, errors.New("missing layout"))
		return
	}
	if err := req.Layout.Validate(); err != nil {
		s.writeError(w, reqID, http.StatusBadRequest, err)
		return
	}
	if req.Iterations < 1 || req.Iterations > maxOptimizeIterations {
		s.writeError(w, reqID, http.StatusBadRequest,
			fmt.Errorf("iterations must be in 1..%d, got %d", maxOptimizeIterations, req.Iterations))
		return
	}

	weights := habitat.DefaultWeights()
	if req.Weights != nil {
		weights = *req.Weights
	}

	result, err := optimizer.Optimize(req.Layout, req.Iterations, s.settings, weights, req.Seed)
	if err != nil {
		s.writeError(w, reqID, http.StatusBadRequest, err)
		return
	}

	s.log.Info("layout optimized",
		zap.String("request_id", reqID),
		zap.Int("iterations", req.Iterations),
		zap.Float64("score", result.Score))
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleDefaults(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"config":   generator.DefaultConfig(),
		"settings": habitat.DefaultSettings(),
		"weights":  habitat.DefaultWeights(),
	})
}

func (s *Server) decodeLayout(w http.ResponseWriter, r *http.Request, reqID string) (*habitat.Layout, bool) {
	var layout habitat.Layout
	if err := json.NewDecoder(r.Body).Decode(&layout); err != nil {
		s.writeError(w, reqID, http.StatusBadRequest, fmt.Errorf("parsing layout: %w", err))
		return nil, false
	}
	if err := layout.Validate(); err != nil {
		s.writeError(w, reqID, http.StatusBadRequest, err)
		return nil, false
	}
	return &layout, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("encoding response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, reqID string, status int, err error) {
	s.log.Warn("request failed",
		zap.String("request_id", reqID),
		zap.Int("status", status),
		zap.Error(err))
	s.writeJSON(w, status, map[string]string{
		"error":      err.Error(),
		"request_id": reqID,
	})
}

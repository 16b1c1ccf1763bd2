package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/tracetm"
	"github.com/aretw0/tracetm/internal/presentation/graph"
	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/aretw0/tracetm/pkg/ports"
	"github.com/aretw0/tracetm/pkg/runner"
	"github.com/go-chi/chi/v5"
)

// APIVersion is the version of the HTTP contract served by this package.
const APIVersion = "0.1.0"

// DefaultMaxSteps is used when a simulate request omits max_steps.
const DefaultMaxSteps = 100

// DefaultMaxStepsLimit caps max_steps unless WithMaxStepsLimit says otherwise.
// Each round can multiply the number of configurations, so the bound is the only
// thing standing between a caller and unbounded work.
const DefaultMaxStepsLimit = 1000

// SimulateRequest is the body of POST /simulate.
// Exactly one of Input and Inputs must be set.
type SimulateRequest struct {
	Input    *string  `json:"input,omitempty"`
	Inputs   []string `json:"inputs,omitempty"`
	MaxSteps *int     `json:"max_steps,omitempty"`
}

// BatchResponse is returned for requests carrying Inputs.
type BatchResponse struct {
	Machine string          `json:"machine"`
	Results []runner.Result `json:"results"`
}

// Server serves one machine over HTTP.
type Server struct {
	Simulator ports.Simulator
	Store     ports.RunStore
	Metrics   http.Handler
	Logger    *slog.Logger

	MaxStepsLimit int
}

// ServerOption configures the Server.
type ServerOption func(*Server)

// WithStore persists every simulated run and enables the /runs endpoints.
func WithStore(store ports.RunStore) ServerOption {
	return func(s *Server) {
		s.Store = store
	}
}

// WithMetrics mounts h at /metrics.
func WithMetrics(h http.Handler) ServerOption {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithMaxStepsLimit rejects simulate requests asking for more than n rounds.
// Non-positive values keep DefaultMaxStepsLimit.
func WithMaxStepsLimit(n int) ServerOption {
	return func(s *Server) {
		if n > 0 {
			s.MaxStepsLimit = n
		}
	}
}

// WithLogger sets the request logger (slog.Default when unset).
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewHandler creates a new HTTP handler for the simulator.
func NewHandler(sim ports.Simulator, opts ...ServerOption) http.Handler {
	server := &Server{Simulator: sim, Logger: slog.Default(), MaxStepsLimit: DefaultMaxStepsLimit}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/machine", server.GetMachine)
	r.Post("/simulate", server.Simulate)
	r.Get("/runs", server.ListRuns)
	r.Get("/runs/{id}", server.GetRun)
	if server.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.Metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{
		"app":         "tracetm-http",
		"version":     strings.TrimSpace(tracetm.Version),
		"api_version": APIVersion,
	}
	if s.Simulator != nil {
		resp["machine"] = s.Simulator.Inspect().Name
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// GetMachine handles the GET /machine request.
// With ?format=mermaid it returns the state diagram instead of the definition.
func (s *Server) GetMachine(w http.ResponseWriter, r *http.Request) {
	def := s.Simulator.Inspect()
	if r.URL.Query().Get("format") == "mermaid" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(graph.GenerateMermaid(def, nil)))
		return
	}
	s.writeJSON(w, http.StatusOK, def)
}

// Simulate handles the POST /simulate request.
func (s *Server) Simulate(w http.ResponseWriter, r *http.Request) {
	var body SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("Simulate: Invalid request body", "error", err)
		return
	}
	if (body.Input == nil) == (len(body.Inputs) == 0) {
		http.Error(w, "Exactly one of input or inputs is required", http.StatusBadRequest)
		return
	}

	maxSteps := min(DefaultMaxSteps, s.MaxStepsLimit)
	if body.MaxSteps != nil {
		maxSteps = *body.MaxSteps
	}
	if maxSteps < 0 {
		http.Error(w, domain.ErrNegativeStepBound.Error(), http.StatusBadRequest)
		return
	}
	if maxSteps > s.MaxStepsLimit {
		http.Error(w, fmt.Sprintf("max_steps %d exceeds limit of %d", maxSteps, s.MaxStepsLimit), http.StatusBadRequest)
		return
	}

	inputs := body.Inputs
	if body.Input != nil {
		inputs = []string{*body.Input}
	}

	opts := []runner.Option{runner.WithLogger(s.Logger)}
	if s.Store != nil {
		opts = append(opts, runner.WithStore(s.Store))
	}
	results, err := runner.NewRunner(s.Simulator, opts...).Run(r.Context(), inputs, maxSteps)
	if err != nil {
		http.Error(w, fmt.Sprintf("Simulate error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("Simulate failed", "error", err)
		return
	}

	if body.Input == nil {
		s.writeJSON(w, http.StatusOK, BatchResponse{Machine: s.Simulator.Inspect().Name, Results: results})
		return
	}

	res := results[0]
	status := http.StatusOK
	switch {
	case errors.Is(res.Err, domain.ErrInvalidInputSymbol):
		status = http.StatusUnprocessableEntity
	case res.Err != nil:
		status = http.StatusBadRequest
	}
	s.writeJSON(w, status, res)
}

// ListRuns handles the GET /runs request.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		http.Error(w, "Run store not configured", http.StatusNotImplemented)
		return
	}
	ids, err := s.Store.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("ListRuns failed", "error", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"runs": ids})
}

// GetRun handles the GET /runs/{id} request.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		http.Error(w, "Run store not configured", http.StatusNotImplemented)
		return
	}
	record, err := s.Store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrRunNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("GetRun failed", "error", err)
		return
	}
	s.writeJSON(w, http.StatusOK, record)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}

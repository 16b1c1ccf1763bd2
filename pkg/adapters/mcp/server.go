package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/tracetm"
	"github.com/aretw0/tracetm/internal/presentation/graph"
	"github.com/aretw0/tracetm/internal/presentation/trace"
	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/aretw0/tracetm/pkg/ports"
	"github.com/aretw0/tracetm/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DefaultMaxSteps is used when the simulate tool is called without max_steps.
const DefaultMaxSteps = 100

// DefaultMaxStepsLimit caps max_steps unless WithMaxStepsLimit says otherwise.
const DefaultMaxStepsLimit = 1000

const machineURI = "tracetm://machine"

// SimulateResponse is the structured result of the simulate tool.
type SimulateResponse struct {
	Machine string          `json:"machine" jsonschema_description:"Name of the simulated machine"`
	Input   string          `json:"input" jsonschema_description:"The input string as simulated"`
	RunID   string          `json:"run_id,omitempty" jsonschema_description:"ID of the persisted run, when a store is configured"`
	Verdict *domain.Verdict `json:"verdict" jsonschema_description:"Outcome, steps, configuration tree and degree of nondeterminism"`
	Summary string          `json:"summary" jsonschema_description:"Plain-text trace of the run"`
}

// DescribeResponse is the structured result of the describe_machine tool.
type DescribeResponse struct {
	Definition domain.Definition `json:"definition" jsonschema_description:"The machine definition"`
	Mermaid    string            `json:"mermaid" jsonschema_description:"Mermaid state diagram of the transition relation"`
}

// Server wraps a Simulator and exposes it as an MCP Server.
type Server struct {
	sim       ports.Simulator
	store     ports.RunStore
	mcpServer *server.MCPServer

	maxStepsLimit int
}

// ServerOption configures the Server.
type ServerOption func(*Server)

// WithMaxStepsLimit rejects simulate calls asking for more than n rounds.
// Non-positive values keep DefaultMaxStepsLimit.
func WithMaxStepsLimit(n int) ServerOption {
	return func(s *Server) {
		if n > 0 {
			s.maxStepsLimit = n
		}
	}
}

// NewServer creates a new MCP Server instance. store may be nil.
func NewServer(sim ports.Simulator, store ports.RunStore, opts ...ServerOption) *Server {
	s := &Server{
		sim:           sim,
		store:         store,
		mcpServer:     server.NewMCPServer("tracetm-mcp", strings.TrimSpace(tracetm.Version)),
		maxStepsLimit: DefaultMaxStepsLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	simulateTool := mcp.NewTool("simulate",
		mcp.WithDescription("Run the machine on an input string, exploring every nondeterministic branch breadth-first."),
		mcp.WithString("input", mcp.Required(), mcp.Description("Input string, one symbol per character. Use '_' for the empty string.")),
		mcp.WithNumber("max_steps", mcp.Description(fmt.Sprintf("Maximum number of expansion rounds (default %d)", DefaultMaxSteps))),
		mcp.WithOutputSchema[SimulateResponse](),
	)
	s.mcpServer.AddTool(simulateTool, mcp.NewStructuredToolHandler(s.handleSimulate))

	describeTool := mcp.NewTool("describe_machine",
		mcp.WithDescription("Get the machine definition and its state diagram."),
		mcp.WithOutputSchema[DescribeResponse](),
	)
	s.mcpServer.AddTool(describeTool, mcp.NewStructuredToolHandler(s.handleDescribe))
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SimulateResponse, error) {
	input, _ := args["input"].(string)
	maxSteps, err := s.stepBound(args["max_steps"])
	if err != nil {
		return SimulateResponse{}, err
	}

	opts := []runner.Option{runner.WithParallelism(1)}
	if s.store != nil {
		opts = append(opts, runner.WithStore(s.store))
	}
	results, err := runner.NewRunner(s.sim, opts...).Run(ctx, []string{input}, maxSteps)
	if err != nil {
		return SimulateResponse{}, fmt.Errorf("simulate failed: %w", err)
	}

	res := results[0]
	if res.Err != nil {
		if !errors.Is(res.Err, domain.ErrInvalidInputSymbol) {
			slog.Warn("MCP Simulate: Input rejected", "error", res.Err, "size", len(input))
		}
		return SimulateResponse{}, fmt.Errorf("input rejected: %w", res.Err)
	}

	return SimulateResponse{
		Machine: s.sim.Inspect().Name,
		Input:   res.Input,
		RunID:   res.RunID,
		Verdict: res.Verdict,
		Summary: trace.Summary(res.Verdict, nil),
	}, nil
}

// stepBound checks max_steps before it is converted, since JSON numbers arrive as
// float64 and may be fractional, negative or beyond int range.
func (s *Server) stepBound(raw any) (int, error) {
	var v float64
	switch n := raw.(type) {
	case nil:
		return min(DefaultMaxSteps, s.maxStepsLimit), nil
	case float64:
		v = n
	case int:
		v = float64(n)
	default:
		return 0, fmt.Errorf("max_steps must be a number, got %T", raw)
	}

	switch {
	case math.IsNaN(v) || v != math.Trunc(v):
		return 0, fmt.Errorf("max_steps must be an integer, got %v", v)
	case v < 0:
		return 0, fmt.Errorf("%w: %v", domain.ErrNegativeStepBound, v)
	case v > float64(s.maxStepsLimit):
		return 0, fmt.Errorf("max_steps %v exceeds limit of %d", v, s.maxStepsLimit)
	}
	return int(v), nil
}

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (DescribeResponse, error) {
	def := s.sim.Inspect()
	return DescribeResponse{
		Definition: def,
		Mermaid:    graph.GenerateMermaid(def, nil),
	}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(machineURI, "Current Machine Definition",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.sim.Inspect())
		if err != nil {
			return nil, fmt.Errorf("failed to encode machine: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      machineURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

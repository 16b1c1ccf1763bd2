package tracetm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/tracetm/internal/runtime"
	"github.com/aretw0/tracetm/internal/validator"
	"github.com/aretw0/tracetm/pkg/adapters/file"
	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/aretw0/tracetm/pkg/ports"
)

// Engine is the high-level entry point for the tracetm library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime    *runtime.Engine
	machine    *domain.Machine
	loader     ports.MachineLoader
	definition *domain.Definition
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	skipChecks bool
	Name       string
}

// Ensure Engine satisfies the adapter-facing port.
var _ ports.Simulator = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLoader injects a custom MachineLoader, bypassing the default file loader.
// The path passed to New is then the machine name inside that loader.
func WithLoader(l ports.MachineLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithDefinition uses def directly; no loader is consulted.
func WithDefinition(def domain.Definition) Option {
	return func(e *Engine) {
		e.definition = &def
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithoutValidation accepts definitions that fail validator checks.
// The engine still treats missing transitions as dead ends.
func WithoutValidation() Option {
	return func(e *Engine) {
		e.skipChecks = true
	}
}

// New loads and validates a machine and prepares an engine for it.
// By default path is a machine file (CSV, YAML or JSON) read through the file loader.
func New(path string, opts ...Option) (*Engine, error) {
	eng := &Engine{}

	// Apply Options first to check if a loader or definition is provided
	for _, opt := range opts {
		opt(eng)
	}

	def, err := eng.resolve(path)
	if err != nil {
		return nil, err
	}

	if !eng.skipChecks {
		if err := validator.Validate(*def); err != nil {
			return nil, fmt.Errorf("machine %s: %w", def.Name, err)
		}
	}
	eng.Name = def.Name

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	eng.logger = eng.logger.With("machine", eng.Name)

	eng.machine = domain.NewMachine(*def)
	eng.runtime = runtime.NewEngine(
		eng.machine,
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	)
	return eng, nil
}

func (e *Engine) resolve(path string) (*domain.Definition, error) {
	if e.definition != nil {
		return e.definition, nil
	}

	name := path
	if e.loader == nil {
		if path == "" {
			return nil, fmt.Errorf("machine path is required when no loader or definition is provided")
		}
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		e.loader = file.New(filepath.Dir(absPath))
		name = filepath.Base(absPath)
	}

	def, err := e.loader.Load(context.Background(), name)
	if err != nil {
		return nil, fmt.Errorf("failed to load machine: %w", err)
	}
	return def, nil
}

// Simulate runs input (one symbol per rune; "_" is the empty string) for at most
// maxSteps expansion rounds.
func (e *Engine) Simulate(ctx context.Context, input string, maxSteps int) (*domain.Verdict, error) {
	return e.runtime.Simulate(ctx, domain.SplitInput(input), maxSteps)
}

// SimulateSymbols is Simulate for callers that already tokenised the input.
func (e *Engine) SimulateSymbols(ctx context.Context, input []domain.Symbol, maxSteps int) (*domain.Verdict, error) {
	return e.runtime.Simulate(ctx, input, maxSteps)
}

// Inspect returns the machine definition for visualization or introspection tools.
func (e *Engine) Inspect() domain.Definition {
	return e.machine.Definition()
}

// Machine returns the frozen machine.
func (e *Engine) Machine() *domain.Machine {
	return e.machine
}

// Loader returns the MachineLoader used by the engine, or nil when built from a definition.
func (e *Engine) Loader() ports.MachineLoader {
	return e.loader
}

package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/aretw0/tracetm/pkg/ports"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one input of a batch.
type Result struct {
	Index   int             `json:"index"`
	Input   string          `json:"input"`
	RunID   string          `json:"run_id,omitempty"`
	Verdict *domain.Verdict `json:"verdict,omitempty"`
	Err     error           `json:"-"`
	Error   string          `json:"error,omitempty"`
}

// Runner simulates batches of inputs against one Simulator.
type Runner struct {
	Simulator ports.Simulator

	// Store persists every result. If nil, results are not persisted.
	Store ports.RunStore

	// Handler receives results in input order. If nil, results are only returned.
	Handler Handler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	Parallelism int

	newID func() string
	now   func() time.Time
}

// NewRunner creates a Runner for sim.
func NewRunner(sim ports.Simulator, opts ...Option) *Runner {
	r := &Runner{
		Simulator:   sim,
		Parallelism: DefaultParallelism,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		newID:       uuid.NewString,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Parallelism < 1 {
		r.Parallelism = 1
	}
	return r
}

// Run simulates every input for at most maxSteps rounds and returns the results in
// input order.
func (r *Runner) Run(ctx context.Context, inputs []string, maxSteps int) ([]Result, error) {
	if r.Simulator == nil {
		return nil, errors.New("runner: no simulator configured")
	}
	machine := r.Simulator.Inspect().Name

	results := make([]Result, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Parallelism)

	for i, input := range inputs {
		g.Go(func() error {
			res, err := r.simulate(gctx, i, input, maxSteps)
			if err != nil {
				return err
			}
			if r.Store != nil {
				if err := r.persist(gctx, machine, maxSteps, &res); err != nil {
					return err
				}
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if r.Handler != nil {
		for _, res := range results {
			if err := r.Handler.Handle(ctx, res); err != nil {
				return results, fmt.Errorf("output error: %w", err)
			}
		}
	}
	return results, nil
}

// simulate returns a fatal error only for problems that concern the whole batch.
func (r *Runner) simulate(ctx context.Context, index int, input string, maxSteps int) (Result, error) {
	res := Result{Index: index, Input: input}

	if err := ValidateInput(input); err != nil {
		r.Logger.Debug("input rejected", "index", index, "err", err)
		res.setErr(err)
		return res, nil
	}

	v, err := r.Simulator.Simulate(ctx, input, maxSteps)
	switch {
	case err == nil:
		res.Verdict = v
	case errors.Is(err, domain.ErrInvalidInputSymbol):
		res.setErr(err)
	default:
		return res, fmt.Errorf("input %d: %w", index, err)
	}
	return res, nil
}

func (r *Runner) persist(ctx context.Context, machine string, maxSteps int, res *Result) error {
	record := &domain.RunRecord{
		ID:        r.newID(),
		Machine:   machine,
		Input:     res.Input,
		MaxSteps:  maxSteps,
		Verdict:   res.Verdict,
		Error:     res.Error,
		CreatedAt: r.now().UTC(),
	}
	if err := r.Store.Save(ctx, record); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	res.RunID = record.ID
	r.Logger.Debug("run saved", "run_id", record.ID, "input", res.Input)
	return nil
}

func (res *Result) setErr(err error) {
	res.Err = err
	res.Error = err.Error()
}

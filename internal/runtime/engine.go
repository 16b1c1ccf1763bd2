package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/tracetm/pkg/domain"
)

// Engine explores a nondeterministic machine breadth-first.
// It holds no per-run state, so one Engine can serve concurrent simulations.
type Engine struct {
	machine *domain.Machine
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	now     func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock overrides the timestamp source used in events.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates an engine for machine.
func NewEngine(machine *domain.Machine, opts ...EngineOption) *Engine {
	e := &Engine{
		machine: machine,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Machine returns the definition being simulated.
func (e *Engine) Machine() *domain.Machine {
	return e.machine
}

// Simulate runs at most maxSteps expansion rounds of input.
//
// The returned error is a *domain.InvalidSymbolError when input contains a symbol
// outside the input alphabet, domain.ErrNegativeStepBound for maxSteps < 0, or the
// context error if ctx is cancelled between rounds.
func (e *Engine) Simulate(ctx context.Context, input []domain.Symbol, maxSteps int) (*domain.Verdict, error) {
	if maxSteps < 0 {
		return nil, e.fail(ctx, input, maxSteps, fmt.Errorf("%w: %d", domain.ErrNegativeStepBound, maxSteps))
	}
	for _, s := range input {
		if !e.machine.AcceptsInput(s) {
			err := &domain.InvalidSymbolError{Symbol: s, Alphabet: e.machine.InputAlphabet()}
			return nil, e.fail(ctx, input, maxSteps, err)
		}
	}

	if e.hooks.OnRunStart != nil {
		e.hooks.OnRunStart(ctx, &domain.RunEvent{
			EventBase: e.base(domain.EventRunStart),
			Input:     input,
			MaxSteps:  maxSteps,
		})
	}

	initial := domain.NewInitialConfiguration(e.machine.Start(), input)
	tree := domain.Tree{{initial}}
	visited := newVisitedSet()
	visited.add(initial)

	for round := 1; round <= maxSteps; round++ {
		if err := ctx.Err(); err != nil {
			return nil, e.fail(ctx, input, maxSteps, fmt.Errorf("simulation interrupted at round %d: %w", round, err))
		}

		current := tree[len(tree)-1]
		if kind, ok := e.decide(current); ok {
			return e.halt(ctx, kind, tree, maxSteps), nil
		}

		next, stats := e.expandLevel(current, visited)
		tree = append(tree, next)

		e.logger.Debug("level expanded",
			"depth", len(tree)-1,
			"configurations", len(next),
			"pruned_reject", stats.prunedReject,
			"pruned_dead_end", stats.prunedDeadEnd,
			"duplicates", stats.duplicates,
			"visited", visited.len(),
		)
		if e.hooks.OnLevel != nil {
			e.hooks.OnLevel(ctx, &domain.LevelEvent{
				EventBase:      e.base(domain.EventLevel),
				Depth:          len(tree) - 1,
				Configurations: len(next),
				PrunedReject:   stats.prunedReject,
				PrunedDeadEnd:  stats.prunedDeadEnd,
				Duplicates:     stats.duplicates,
			})
		}
	}

	// The last level was built but never inspected by the loop.
	if kind, ok := e.decide(tree[len(tree)-1]); ok {
		return e.halt(ctx, kind, tree, maxSteps), nil
	}
	return e.halt(ctx, domain.VerdictStepLimitExceeded, tree, maxSteps), nil
}

// decide applies the acceptance check and then the dead-end check to a level.
func (e *Engine) decide(level domain.Level) (domain.VerdictKind, bool) {
	for _, c := range level {
		if e.machine.IsAccept(c.State) {
			return domain.VerdictAccepted, true
		}
	}
	for _, c := range level {
		if !e.machine.IsReject(c.State) {
			return "", false
		}
	}
	return domain.VerdictRejected, true
}

type levelStats struct {
	prunedReject  int
	prunedDeadEnd int
	duplicates    int
}

func (e *Engine) expandLevel(current domain.Level, visited *visitedSet) (domain.Level, levelStats) {
	var stats levelStats
	next := domain.Level{}
	for _, c := range current {
		exp := e.expand(c)
		switch exp.Kind {
		case PrunedRejectState:
			stats.prunedReject++
		case PrunedNoTransition:
			stats.prunedDeadEnd++
		case Survives:
			for _, succ := range exp.Successors {
				if !visited.add(succ) {
					stats.duplicates++
					continue
				}
				next = append(next, succ)
			}
		}
	}
	return next, stats
}

func (e *Engine) halt(ctx context.Context, kind domain.VerdictKind, tree domain.Tree, maxSteps int) *domain.Verdict {
	v := &domain.Verdict{
		Kind:           kind,
		MaxSteps:       maxSteps,
		Tree:           tree,
		Nondeterminism: tree.Nondeterminism(),
	}
	if v.Halted() {
		v.Steps = tree.Depth()
	}

	e.logger.Info("simulation halted",
		"machine", e.machine.Name(),
		"outcome", string(kind),
		"steps", v.Steps,
		"levels", len(tree),
		"nondeterminism", v.Nondeterminism,
	)
	if e.hooks.OnRunHalt != nil {
		e.hooks.OnRunHalt(ctx, &domain.HaltEvent{
			EventBase: e.base(domain.EventRunHalt),
			Verdict:   v,
		})
	}
	return v
}

func (e *Engine) fail(ctx context.Context, input []domain.Symbol, maxSteps int, err error) error {
	e.logger.Warn("simulation failed", "machine", e.machine.Name(), "error", err)
	if e.hooks.OnRunFailed != nil {
		e.hooks.OnRunFailed(ctx, &domain.RunEvent{
			EventBase: e.base(domain.EventRunFailed),
			Input:     input,
			MaxSteps:  maxSteps,
			Err:       err,
		})
	}
	return err
}

func (e *Engine) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: e.now(),
		Type:      t,
		Machine:   e.machine.Name(),
	}
}

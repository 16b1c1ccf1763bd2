package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/tracetm/pkg/domain"
)

// LoggingHooks logs run boundaries at Info and every level at Debug.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			logger.InfoContext(ctx, "run_start", "machine", e.Machine, "input_len", len(e.Input), "max_steps", e.MaxSteps)
		},
		OnLevel: func(ctx context.Context, e *domain.LevelEvent) {
			logger.DebugContext(ctx, "level",
				"machine", e.Machine,
				"depth", e.Depth,
				"configurations", e.Configurations,
				"duplicates", e.Duplicates,
			)
		},
		OnRunHalt: func(ctx context.Context, e *domain.HaltEvent) {
			logger.InfoContext(ctx, "run_halt",
				"machine", e.Machine,
				"outcome", e.Verdict.Kind,
				"steps", e.Verdict.Steps,
				"nondeterminism", e.Verdict.Nondeterminism,
			)
		},
		OnRunFailed: func(ctx context.Context, e *domain.RunEvent) {
			logger.WarnContext(ctx, "run_failed", "machine", e.Machine, "err", e.Err)
		},
	}
}

// Chain merges several hook sets; each event is delivered to every non-nil callback
// in argument order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range sets {
		out.OnRunStart = chain(out.OnRunStart, h.OnRunStart)
		out.OnLevel = chain(out.OnLevel, h.OnLevel)
		out.OnRunHalt = chain(out.OnRunHalt, h.OnRunHalt)
		out.OnRunFailed = chain(out.OnRunFailed, h.OnRunFailed)
	}
	return out
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}

package runner

import (
	"log/slog"
	"time"

	"github.com/aretw0/tracetm/pkg/ports"
)

// DefaultParallelism is the number of inputs simulated at the same time.
const DefaultParallelism = 4

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithStore configures the RunStore for persistence.
func WithStore(store ports.RunStore) Option {
	return func(r *Runner) {
		r.Store = store
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithHandler configures where results are emitted.
func WithHandler(handler Handler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithParallelism bounds the number of concurrent simulations. Values below one mean one.
func WithParallelism(n int) Option {
	return func(r *Runner) {
		r.Parallelism = n
	}
}

// WithIDGenerator replaces the run ID generator (UUIDv4 by default).
func WithIDGenerator(fn func() string) Option {
	return func(r *Runner) {
		r.newID = fn
	}
}

// WithClock replaces the time source used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

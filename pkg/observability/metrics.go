package observability

import (
	"context"
	"errors"
	"net/http"

	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the simulator's Prometheus collectors.
type Metrics struct {
	Runs           *prometheus.CounterVec
	Levels         *prometheus.CounterVec
	Pruned         *prometheus.CounterVec
	TreeSize       *prometheus.HistogramVec
	Nondeterminism *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// NewMetrics creates the collectors and registers them with reg.
// Pass a fresh prometheus.NewRegistry() in tests to avoid global state.
func NewMetrics(reg *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracetm_runs_total",
				Help: "Simulations by machine and outcome",
			},
			[]string{"machine", "outcome"},
		),
		Levels: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracetm_levels_expanded_total",
				Help: "Breadth-first levels expanded",
			},
			[]string{"machine"},
		),
		Pruned: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracetm_pruned_configurations_total",
				Help: "Configurations that produced no successor, by reason",
			},
			[]string{"machine", "reason"},
		),
		TreeSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tracetm_tree_configurations",
				Help:    "Configurations in the tree of a finished run",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
			[]string{"machine"},
		),
		Nondeterminism: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tracetm_nondeterminism",
				Help:    "Average configurations per level of a finished run",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{"machine"},
		),
		gatherer: reg,
	}

	var err error
	if m.Runs, err = register(reg, m.Runs); err != nil {
		return nil, err
	}
	if m.Levels, err = register(reg, m.Levels); err != nil {
		return nil, err
	}
	if m.Pruned, err = register(reg, m.Pruned); err != nil {
		return nil, err
	}
	if m.TreeSize, err = register(reg, m.TreeSize); err != nil {
		return nil, err
	}
	if m.Nondeterminism, err = register(reg, m.Nondeterminism); err != nil {
		return nil, err
	}
	return m, nil
}

// register returns the collector already registered under the same descriptor, if any.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return c, err
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLevel: func(ctx context.Context, e *domain.LevelEvent) {
			m.Levels.WithLabelValues(e.Machine).Inc()
			m.Pruned.WithLabelValues(e.Machine, "reject_state").Add(float64(e.PrunedReject))
			m.Pruned.WithLabelValues(e.Machine, "no_transition").Add(float64(e.PrunedDeadEnd))
			m.Pruned.WithLabelValues(e.Machine, "duplicate").Add(float64(e.Duplicates))
		},
		OnRunHalt: func(ctx context.Context, e *domain.HaltEvent) {
			m.Runs.WithLabelValues(e.Machine, string(e.Verdict.Kind)).Inc()
			m.TreeSize.WithLabelValues(e.Machine).Observe(float64(e.Verdict.Tree.Size()))
			m.Nondeterminism.WithLabelValues(e.Machine).Observe(e.Verdict.Nondeterminism)
		},
		OnRunFailed: func(ctx context.Context, e *domain.RunEvent) {
			m.Runs.WithLabelValues(e.Machine, "error").Inc()
		},
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

package runtime

import "github.com/aretw0/tracetm/pkg/domain"

// ExpansionKind tags what happened to a configuration during expansion.
type ExpansionKind int

const (
	// Survives means the configuration produced successors (before dedup).
	Survives ExpansionKind = iota
	// PrunedNoTransition means no outcome exists for (state, head).
	PrunedNoTransition
	// PrunedRejectState means the configuration sits in the reject state.
	PrunedRejectState
)

func (k ExpansionKind) String() string {
	switch k {
	case Survives:
		return "survives"
	case PrunedNoTransition:
		return "pruned_no_transition"
	case PrunedRejectState:
		return "pruned_reject_state"
	}
	return "unknown"
}

// Expansion is the result of applying the transition relation to one configuration.
type Expansion struct {
	Kind       ExpansionKind
	Successors []domain.Configuration
}

// Expand applies the transition relation to c without consulting the visited set.
func (e *Engine) Expand(c domain.Configuration) Expansion {
	return e.expand(c)
}

func (e *Engine) expand(c domain.Configuration) Expansion {
	if e.machine.IsReject(c.State) {
		return Expansion{Kind: PrunedRejectState}
	}
	outcomes := e.machine.Outcomes(c.State, c.Head())
	if len(outcomes) == 0 {
		return Expansion{Kind: PrunedNoTransition}
	}
	successors := make([]domain.Configuration, 0, len(outcomes))
	for _, o := range outcomes {
		successors = append(successors, Apply(c, o))
	}
	return Expansion{Kind: Survives, Successors: successors}
}

package domain

// VerdictKind is the halting outcome of a simulation.
type VerdictKind string

const (
	VerdictAccepted          VerdictKind = "accepted"
	VerdictRejected          VerdictKind = "rejected"
	VerdictStepLimitExceeded VerdictKind = "step_limit_exceeded"
)

// Verdict is the result of exploring a machine on one input.
type Verdict struct {
	Kind VerdictKind `json:"kind"`

	// Steps is the depth of the level that decided the run.
	// It is zero for VerdictStepLimitExceeded.
	Steps int `json:"steps"`

	// MaxSteps echoes the bound the run was given.
	MaxSteps int `json:"max_steps"`

	Tree           Tree    `json:"tree"`
	Nondeterminism float64 `json:"nondeterminism"`
}

// Halted reports whether the run reached a decision before the step bound.
func (v *Verdict) Halted() bool {
	return v.Kind == VerdictAccepted || v.Kind == VerdictRejected
}

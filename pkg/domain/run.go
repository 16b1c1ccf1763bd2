package domain

import "time"

// RunRecord is a persisted simulation: the arguments and either a verdict or an error.
type RunRecord struct {
	ID        string    `json:"id"`
	Machine   string    `json:"machine"`
	Input     string    `json:"input"`
	MaxSteps  int       `json:"max_steps"`
	Verdict   *Verdict  `json:"verdict,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

package ports

import (
	"context"

	"github.com/aretw0/tracetm/pkg/domain"
)

// Simulator is the engine surface used by adapters (runner, HTTP, MCP).
// Implementations must be safe for concurrent use.
type Simulator interface {
	// Simulate explores the machine on input for at most maxSteps rounds.
	Simulate(ctx context.Context, input string, maxSteps int) (*domain.Verdict, error)

	// Inspect returns the definition being simulated.
	Inspect() domain.Definition
}

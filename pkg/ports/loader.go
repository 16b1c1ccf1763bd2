package ports

import (
	"context"

	"github.com/aretw0/tracetm/pkg/domain"
)

// MachineLoader defines how machine definitions are retrieved.
// This allows the storage layer (files, memory) to be decoupled.
type MachineLoader interface {
	// Load retrieves a definition by name.
	// Returns domain.ErrMachineNotFound if the machine does not exist.
	Load(ctx context.Context, name string) (*domain.Definition, error)

	// List returns the names of all machines available to Load.
	List(ctx context.Context) ([]string, error)
}

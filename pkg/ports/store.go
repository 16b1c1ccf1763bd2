package ports

import (
	"context"

	"github.com/aretw0/tracetm/pkg/domain"
)

// RunStore defines the interface for persisting simulation runs.
type RunStore interface {
	// Save persists a run under record.ID.
	Save(ctx context.Context, record *domain.RunRecord) error

	// Load retrieves a run by ID.
	// Returns domain.ErrRunNotFound if the run does not exist.
	Load(ctx context.Context, id string) (*domain.RunRecord, error)

	// Delete removes a run.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of stored runs, oldest first.
	List(ctx context.Context) ([]string, error)
}

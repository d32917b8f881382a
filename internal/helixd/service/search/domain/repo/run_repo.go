package repo

import (
	"context"

	"github.com/kiosk404/helix/internal/helixd/service/search/domain/entity"
)

// RunRepository defines the persistence interface for search runs.
type RunRepository interface {
	// Create stores a new run.
	Create(ctx context.Context, run *entity.Run) error
	// Get retrieves a run by ID.
	Get(ctx context.Context, id string) (*entity.Run, error)
	// Update updates an existing run.
	Update(ctx context.Context, run *entity.Run) error
	// ListByUser returns all runs for a given user, newest first.
	ListByUser(ctx context.Context, userID string) ([]*entity.Run, error)
}

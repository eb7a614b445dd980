package notes

import (
	"context"

	"github.com/rjrato/Write-it-V2-Backend/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	GetByID(ctx context.Context, id string) (*models.Note, error)
	// DeleteByID is idempotent: deleting an id with no row is not an error.
	DeleteByID(ctx context.Context, id string) error
	// ListByIDs returns the notes that still exist, in the order of ids.
	// Dangling ids are silently omitted.
	ListByIDs(ctx context.Context, ids []string) ([]*models.Note, error)
}

package users

import (
	"context"

	"github.com/rjrato/Write-it-V2-Backend/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByIDForUpdate loads a user while holding a row lock until the
	// surrounding transaction ends. Only meaningful on a transactional handle.
	GetByIDForUpdate(ctx context.Context, id string) (*models.User, error)
	SaveNoteIDs(ctx context.Context, id string, noteIDs []string) error
}

package notes

import (
	"context"

	"github.com/passvault/passvault/internal/server/models"
)

// Repository stores per-user secure notes under the same ownership contract
// as credentials: a record owned by another user is indistinguishable from a
// missing one.
type Repository interface {
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	GetByID(ctx context.Context, id, userID string) (*models.Note, error)
	Update(ctx context.Context, note *models.Note) (*models.Note, error)
	Delete(ctx context.Context, id, userID string) error
	ListByUser(ctx context.Context, userID string) ([]*models.Note, error)
}

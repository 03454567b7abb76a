package credentials

import (
	"context"

	"github.com/passvault/passvault/internal/server/models"
)

// Repository stores per-user credential records. Every operation that
// targets a single record takes the caller's user ID and must not reveal
// whether a mismatch was a missing record or a foreign one: both are
// common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, cred *models.Credential) (*models.Credential, error)
	GetByID(ctx context.Context, id, userID string) (*models.Credential, error)
	Update(ctx context.Context, cred *models.Credential) (*models.Credential, error)
	Delete(ctx context.Context, id, userID string) error
	ListByUser(ctx context.Context, userID string) ([]*models.Credential, error)
}

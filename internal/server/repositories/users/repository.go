package users

import (
	"context"

	"github.com/passvault/passvault/internal/server/models"
)

// Repository is the user directory contract the authentication service
// depends on. Create must enforce email uniqueness atomically; the service's
// ExistsByEmail pre-check alone is insufficient under concurrent
// registrations.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

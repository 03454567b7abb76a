package contacts

import (
	"context"

	"github.com/passvault/passvault/internal/server/models"
)

// Repository stores per-user address-book contacts. Ownership scoping matches
// the vault record types: a contact owned by another user is indistinguishable
// from a missing one.
type Repository interface {
	Create(ctx context.Context, contact *models.Contact) (*models.Contact, error)
	GetByID(ctx context.Context, id, userID string) (*models.Contact, error)
	Update(ctx context.Context, contact *models.Contact) (*models.Contact, error)
	Delete(ctx context.Context, id, userID string) error
	ListByUser(ctx context.Context, userID string) ([]*models.Contact, error)
}

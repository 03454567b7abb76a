package audit

import (
	"context"

	"github.com/passvault/passvault/internal/server/models"
)

// Repository appends and lists audit events. Events are never updated or
// deleted through this interface.
type Repository interface {
	Create(ctx context.Context, event *models.AuditEvent) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*models.AuditEvent, error)
}

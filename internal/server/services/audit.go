package services

import (
	"context"

	"github.com/passvault/passvault/internal/logging"
	"github.com/passvault/passvault/internal/server/models"
	"github.com/passvault/passvault/internal/server/repositories/audit"
)

// ClientMeta carries request-level attribution for the audit trail. The HTTP
// layer fills it in; services treat it as opaque.
type ClientMeta struct {
	IPAddress string
	UserAgent string
}

// recordAudit appends an audit event. Auditing is best-effort: a failed
// insert is logged and swallowed so it can never fail the user's operation.
func recordAudit(ctx context.Context, repo audit.Repository, logger logging.Logger,
	userID, action, entity, entityID string, success bool, meta ClientMeta) {

	event := &models.AuditEvent{
		UserID:    userID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Success:   success,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	}

	if err := repo.Create(ctx, event); err != nil {
		logger.Warn(ctx, "audit event not recorded",
			"action", action, "entity", entity, "error", err.Error())
	}
}

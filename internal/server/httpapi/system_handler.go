package httpapi

import (
	"net/http"

	"github.com/passvault/passvault/internal/logging"
	"github.com/passvault/passvault/internal/server/config"
	"github.com/passvault/passvault/internal/server/services"
)

// SystemHandler serves the non-CRUD surface: health, security posture and
// vault exports.
type SystemHandler struct {
	backup *services.BackupService
	config *config.Config
	logger logging.Logger
}

func NewSystemHandler(backup *services.BackupService, cfg *config.Config, logger logging.Logger) *SystemHandler {
	return &SystemHandler{
		backup: backup,
		config: cfg,
		logger: logger.With("module", "system_handler"),
	}
}

// Health handles GET /healthz.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SecurityStatus handles GET /api/security/status. It summarizes the active
// protection settings without exposing any secret material.
func (h *SystemHandler) SecurityStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"passwordHashing":      "bcrypt",
		"bcryptCost":           h.config.BcryptCost,
		"tokenType":            "JWT",
		"tokenValidityMinutes": int(h.config.TokenValidityDuration.Minutes()),
		"authRateLimiting":     true,
		"auditLogging":         true,
	})
}

// BackupStatus handles GET /api/backup/status.
func (h *SystemHandler) BackupStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token")
		return
	}

	writeJSON(w, http.StatusOK, h.backup.Status(r.Context(), user.ID))
}

// BackupExport handles POST /api/backup/export.
func (h *SystemHandler) BackupExport(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token")
		return
	}

	result, err := h.backup.Export(r.Context(), user.ID)
	if err != nil {
		h.logger.Error(r.Context(), "vault export failed", "user_id", user.ID, "error", err.Error())
		writeServiceError(w, err)
		return
	}

	h.logger.Info(r.Context(), "vault exported", "user_id", user.ID, "key", result.Key)

	writeJSON(w, http.StatusOK, result)
}

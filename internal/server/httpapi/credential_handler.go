package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/passvault/passvault/internal/logging"
	"github.com/passvault/passvault/internal/server/models"
	"github.com/passvault/passvault/internal/server/services"
)

// CredentialHandler serves the owner-scoped credential CRUD endpoints.
// The owning user always comes from the request context, never from the body.
type CredentialHandler struct {
	svc    *services.CredentialService
	logger logging.Logger
}

func NewCredentialHandler(svc *services.CredentialService, logger logging.Logger) *CredentialHandler {
	return &CredentialHandler{
		svc:    svc,
		logger: logger.With("module", "credential_handler"),
	}
}

type credentialRequest struct {
	Title    string `json:"title"`
	Username string `json:"username"`
	Password string `json:"password"`
	URL      string `json:"url"`
	Notes    string `json:"notes"`
}

func (req credentialRequest) toInput() services.CredentialInput {
	return services.CredentialInput{
		Title:    req.Title,
		Username: req.Username,
		Secret:   req.Password,
		URL:      req.URL,
		Notes:    req.Notes,
	}
}

// Create handles POST /api/passwords.
func (h *CredentialHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token")
		return
	}

	var req credentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	cred, err := h.svc.Create(r.Context(), user.ID, req.toInput(), clientMeta(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, cred)
}

// List handles GET /api/passwords.
func (h *CredentialHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token")
		return
	}

	creds, err := h.svc.List(r.Context(), user.ID, clientMeta(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if creds == nil {
		creds = []*models.Credential{}
	}

	writeJSON(w, http.StatusOK, creds)
}

// Get handles GET /api/passwords/{id}.
func (h *CredentialHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token")
		return
	}

	cred, err := h.svc.Get(r.Context(), user.ID, chi.URLParam(r, "id"), clientMeta(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cred)
}

// Update handles PUT /api/passwords/{id}.
func (h *CredentialHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token")
		return
	}

	var req credentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	cred, err := h.svc.Update(r.Context(), user.ID, chi.URLParam(r, "id"), req.toInput(), clientMeta(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cred)
}

// Delete handles DELETE /api/passwords/{id}.
func (h *CredentialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token")
		return
	}

	if err := h.svc.Delete(r.Context(), user.ID, chi.URLParam(r, "id"), clientMeta(r)); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Analytics handles GET /api/analytics/user. It returns the caller's recent
// audit trail, newest first.
func (h *CredentialHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token")
		return
	}

	events, err := h.svc.ListAuditEvents(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if events == nil {
		events = []*models.AuditEvent{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

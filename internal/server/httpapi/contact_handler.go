package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/passvault/passvault/internal/logging"
	"github.com/passvault/passvault/internal/server/models"
	"github.com/passvault/passvault/internal/server/services"
)

// ContactHandler serves the owner-scoped address-book endpoints.
type ContactHandler struct {
	svc    *services.ContactService
	logger logging.Logger
}

func NewContactHandler(svc *services.ContactService, logger logging.Logger) *ContactHandler {
	return &ContactHandler{
		svc:    svc,
		logger: logger.With("module", "contact_handler"),
	}
}

type contactRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Mobile    string `json:"mobile"`
	Company   string `json:"company"`
	JobTitle  string `json:"jobTitle"`
	Website   string `json:"website"`
	Notes     string `json:"notes"`
	Category  string `json:"category"`
	Favorite  bool   `json:"isFavorite"`
	Emergency bool   `json:"isEmergency"`
}

func (req contactRequest) toInput() services.ContactInput {
	return services.ContactInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Mobile:    req.Mobile,
		Company:   req.Company,
		JobTitle:  req.JobTitle,
		Website:   req.Website,
		Notes:     req.Notes,
		Category:  req.Category,
		Favorite:  req.Favorite,
		Emergency: req.Emergency,
	}
}

// Create handles POST /api/contacts.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token")
		return
	}

	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	contact, err := h.svc.Create(r.Context(), user.ID, req.toInput(), clientMeta(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, contact)
}

// List handles GET /api/contacts.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token")
		return
	}

	contacts, err := h.svc.List(r.Context(), user.ID, clientMeta(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if contacts == nil {
		contacts = []*models.Contact{}
	}

	writeJSON(w, http.StatusOK, contacts)
}

// Get handles GET /api/contacts/{id}.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token")
		return
	}

	contact, err := h.svc.Get(r.Context(), user.ID, chi.URLParam(r, "id"), clientMeta(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contact)
}

// Update handles PUT /api/contacts/{id}.
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token")
		return
	}

	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	contact, err := h.svc.Update(r.Context(), user.ID, chi.URLParam(r, "id"), req.toInput(), clientMeta(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contact)
}

// Delete handles DELETE /api/contacts/{id}.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/passvault/passvault/internal/logging"
	"github.com/passvault/passvault/internal/server/models"
	"github.com/passvault/passvault/internal/server/services"
)

// NoteHandler serves the owner-scoped secure note endpoints.
type NoteHandler struct {
	svc    *services.NoteService
	logger logging.Logger
}

func NewNoteHandler(svc *services.NoteService, logger logging.Logger) *NoteHandler {
	return &NoteHandler{
		svc:    svc,
		logger: logger.With("module", "note_handler"),
	}
}

type noteRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Pinned   bool   `json:"pinned"`
}

func (req noteRequest) toInput() services.NoteInput {
	return services.NoteInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Pinned:   req.Pinned,
	}
}

// Create handles POST /api/notes.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token")
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	note, err := h.svc.Create(r.Context(), user.ID, req.toInput(), clientMeta(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, note)
}

// List handles GET /api/notes.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token")
		return
	}

	notes, err := h.svc.List(r.Context(), user.ID, clientMeta(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if notes == nil {
		notes = []*models.Note{}
	}

	writeJSON(w, http.StatusOK, notes)
}

// Get handles GET /api/notes/{id}.
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token")
		return
	}

	note, err := h.svc.Get(r.Context(), user.ID, chi.URLParam(r, "id"), clientMeta(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

// Update handles PUT /api/notes/{id}.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token")
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	note, err := h.svc.Update(r.Context(), user.ID, chi.URLParam(r, "id"), req.toInput(), clientMeta(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

// Delete handles DELETE /api/notes/{id}.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/passvault/passvault/internal/common"
	"github.com/passvault/passvault/internal/logging"
	"github.com/passvault/passvault/internal/server/metrics"
	"github.com/passvault/passvault/internal/server/services"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	users     *services.UserService
	logger    logging.Logger
	collector *metrics.Collector
}

func NewAuthHandler(users *services.UserService, logger logging.Logger, collector *metrics.Collector) *AuthHandler {
	return &AuthHandler{
		users:     users,
		logger:    logger.With("module", "auth_handler"),
		collector: collector,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, err := h.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorEmailExists) {
			h.logger.Warn(r.Context(), "registration rejected", "reason", "email exists", "ip", r.RemoteAddr)
		}
		writeServiceError(w, err)
		return
	}

	h.logger.Info(r.Context(), "user registered", "user_id", user.ID)

	writeJSON(w, http.StatusCreated, user.Public())
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			h.collector.RecordAuthFailure()
			h.logger.Warn(r.Context(), "login rejected", "ip", r.RemoteAddr)
		}
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

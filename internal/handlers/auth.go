package handlers

import (
	"net/http"

	"github.com/BerylCAtieno/opticours-api/internal/models"
	"github.com/BerylCAtieno/opticours-api/internal/services"
	"github.com/BerylCAtieno/opticours-api/internal/utils"
)

type AuthHandler struct {
	responder
	service services.SessionService
}

func NewAuthHandler(service services.SessionService, logger *utils.Logger) *AuthHandler {
	return &AuthHandler{
		responder: responder{logger: logger},
		service:   service,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	session, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, session)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	session, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, session)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context()); err != nil {
		h.respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type sessionResponse struct {
	Authenticated bool            `json:"authenticated"`
	Session       *models.Session `json:"session,omitempty"`
}

// Session reports the persisted session, if any. It never fails.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	session, ok := h.service.CurrentSession(r.Context())
	h.respondJSON(w, http.StatusOK, sessionResponse{Authenticated: ok, Session: session})
}

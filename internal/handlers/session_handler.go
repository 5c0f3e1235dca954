package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/just-java/internal/models"
	"github.com/Lixing-Zhang/just-java/internal/repository"
	"github.com/Lixing-Zhang/just-java/internal/service"
)

// SessionHandler handles the quantity controls of an order form
type SessionHandler struct {
	service *service.SessionService
	logger  *slog.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(service *service.SessionService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		logger:  logger,
	}
}

// CreateSession handles POST /api/session
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.CreateSession(r.Context())
	if err != nil {
		h.logger.Error("failed to create session", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusCreated, session, h.logger)
}

// GetSession handles GET /api/session/{sessionId}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.GetSession(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, session, h.logger)
}

// DeleteSession handles DELETE /api/session/{sessionId}
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSession(r.Context(), chi.URLParam(r, "sessionId")); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Increment handles POST /api/session/{sessionId}/increment
func (h *SessionHandler) Increment(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.service.Increment)
}

// Decrement handles POST /api/session/{sessionId}/decrement
func (h *SessionHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.service.Decrement)
}

func (h *SessionHandler) move(w http.ResponseWriter, r *http.Request, step func(ctx context.Context, id string) (*models.Session, error)) {
	session, err := step(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, session, h.logger)
}

// writeError maps session errors; bound rejections answer 422 with the warning
// and the unchanged quantity
func (h *SessionHandler) writeError(w http.ResponseWriter, err error) {
	var bound *service.BoundError

	switch {
	case errors.As(err, &bound):
		qty := bound.Session.Quantity
		WriteJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:    bound.Warning,
			Quantity: &qty,
		}, h.logger)
	case errors.Is(err, repository.ErrSessionNotFound):
		WriteError(w, http.StatusNotFound, "Session not found", h.logger)
	default:
		h.logger.Error("session request failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
	}
}

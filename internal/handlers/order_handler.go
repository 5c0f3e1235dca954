package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/just-java/internal/models"
	"github.com/Lixing-Zhang/just-java/internal/repository"
	"github.com/Lixing-Zhang/just-java/internal/service"
	"github.com/Lixing-Zhang/just-java/pkg/validator"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	log          *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		log:          log,
	}
}

// CreateOrder handles POST /api/order
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest

	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Warn("failed to decode order request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	confirmation, err := h.orderService.SubmitOrder(r.Context(), req)
	if err != nil {
		h.writeOrderError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, confirmation, h.log)
}

// CreateSessionOrder handles POST /api/session/{sessionId}/order
// The quantity is taken from the session counter
func (h *OrderHandler) CreateSessionOrder(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	var req models.SessionOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Warn("failed to decode session order request", "session_id", sessionID, "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	confirmation, err := h.orderService.SubmitSessionOrder(r.Context(), sessionID, req)
	if err != nil {
		h.writeOrderError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, confirmation, h.log)
}

// Quote handles GET /api/price?quantity=&whippedCream=&chocolate=
func (h *OrderHandler) Quote(w http.ResponseWriter, r *http.Request) {
	qty, err := strconv.Atoi(r.URL.Query().Get("quantity"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "quantity must be an integer", h.log)
		return
	}

	cream, err := queryBool(r, "whippedCream")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "whippedCream must be a boolean", h.log)
		return
	}

	chocolate, err := queryBool(r, "chocolate")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "chocolate must be a boolean", h.log)
		return
	}

	quote, err := h.orderService.Quote(qty, cream, chocolate)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "quantity must be between 1 and 100", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, quote, h.log)
}

// Menu handles GET /api/menu
func (h *OrderHandler) Menu(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.orderService.Menu(), h.log)
}

func (h *OrderHandler) writeOrderError(w http.ResponseWriter, err error) {
	var verr *validator.ValidationError

	switch {
	case errors.As(err, &verr):
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  "Invalid order",
			Fields: verr.Fields(),
		}, h.log)
	case errors.Is(err, repository.ErrSessionNotFound):
		WriteError(w, http.StatusNotFound, "Session not found", h.log)
	default:
		h.log.Error("failed to submit order", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
	}
}

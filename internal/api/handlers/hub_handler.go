package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/KJithathma/tmf670-payment-method-api/internal/api/response"
	"github.com/KJithathma/tmf670-payment-method-api/internal/api/validation"
	"github.com/KJithathma/tmf670-payment-method-api/internal/apperrors"
	"github.com/KJithathma/tmf670-payment-method-api/internal/models"
)

// ListenersService defines the interface for hub listener registration logic.
type ListenersService interface {
	RegisterListener(ctx context.Context, req *models.RegisterListenerRequest) (*models.RegisterListenerResponse, error)
	DeregisterListener(ctx context.Context, id uuid.UUID) error
}

// HubHandler handles HTTP requests for the event hub (listener registration).
type HubHandler struct {
	service ListenersService
}

// NewHubHandler creates a new hub handler.
func NewHubHandler(service ListenersService) *HubHandler {
	return &HubHandler{service: service}
}

// Register handles POST /hub.
func (h *HubHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterListenerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Invalid request body", "method", r.Method, "path", r.URL.Path, "error", err)
		response.RespondBadRequest(w, "Invalid request body")
		return
	}

	if err := validation.ValidateStruct(&req); err != nil {
		validation.RespondValidationError(w, err)
		return
	}

	listener, err := h.service.RegisterListener(r.Context(), &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			response.RespondConflict(w, err.Error())
			return
		}
		slog.Error("Failed to register listener", "method", r.Method, "path", r.URL.Path, "error", err)
		response.RespondInternalServerError(w, "An unexpected error occurred")
		return
	}

	response.RespondJSON(w, http.StatusCreated, listener)
}

// Deregister handles DELETE /hub/{id}.
func (h *HubHandler) Deregister(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "Listener")
	if !ok {
		return
	}

	if err := h.service.DeregisterListener(r.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.RespondNotFound(w, "Listener not found")
			return
		}
		slog.Error("Failed to deregister listener", "method", r.Method, "path", r.URL.Path, "id", id, "error", err)
		response.RespondInternalServerError(w, "An unexpected error occurred")
		return
	}

	response.RespondNoContent(w)
}

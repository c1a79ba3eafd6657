// Package handlers provides HTTP handlers for the payment method API.
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

// PaymentMethodsService defines the interface for payment method business logic.
type PaymentMethodsService interface {
	CreatePaymentMethod(ctx context.Context, req *models.CreatePaymentMethodRequest) (*models.PaymentMethod, error)
	GetPaymentMethod(ctx context.Context, id uuid.UUID) (*models.PaymentMethod, error)
	ListPaymentMethods(ctx context.Context, filters *models.ListPaymentMethodsFilters) ([]models.PaymentMethod, error)
	UpdatePaymentMethod(ctx context.Context, id uuid.UUID, patch *models.UpdatePaymentMethodRequest) (*models.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, id uuid.UUID) error
}

// PaymentMethodsHandler handles HTTP requests for payment methods.
type PaymentMethodsHandler struct {
	service PaymentMethodsService
}

// NewPaymentMethodsHandler creates a new payment methods handler.
func NewPaymentMethodsHandler(service PaymentMethodsService) *PaymentMethodsHandler {
	return &PaymentMethodsHandler{service: service}
}

// Create handles POST /paymentMethod.
func (h *PaymentMethodsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePaymentMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Invalid request body", "method", r.Method, "path", r.URL.Path, "error", err)
		response.RespondBadRequest(w, "Invalid request body")
		return
	}

	pm, err := h.service.CreatePaymentMethod(r.Context(), &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			response.RespondBadRequest(w, err.Error())
			return
		}
		slog.Error("Failed to create payment method", "method", r.Method, "path", r.URL.Path, "error", err)
		response.RespondInternalServerError(w, "An unexpected error occurred")
		return
	}

	response.RespondJSON(w, http.StatusCreated, pm)
}

// Get handles GET /paymentMethod/{id}.
func (h *PaymentMethodsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "Payment method")
	if !ok {
		return
	}

	pm, err := h.service.GetPaymentMethod(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.RespondNotFound(w, "Payment method not found")
			return
		}
		slog.Error("Failed to get payment method", "method", r.Method, "path", r.URL.Path, "id", id, "error", err)
		response.RespondInternalServerError(w, "An unexpected error occurred")
		return
	}

	fields := fieldsParam(r)
	if len(fields) == 0 {
		response.RespondJSON(w, http.StatusOK, pm)
		return
	}

	projected, err := pm.Project(fields)
	if err != nil {
		slog.Error("Failed to project payment method", "id", id, "error", err)
		response.RespondInternalServerError(w, "An unexpected error occurred")
		return
	}

	response.RespondJSON(w, http.StatusOK, projected)
}

// List handles GET /paymentMethod.
func (h *PaymentMethodsHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := &models.ListPaymentMethodsFilters{}
	if err := validation.DecodeQueryParams(r, filters); err != nil {
		response.RespondBadRequest(w, "Invalid query parameters")
		return
	}

	pms, err := h.service.ListPaymentMethods(r.Context(), filters)
	if err != nil {
		slog.Error("Failed to list payment methods", "method", r.Method, "path", r.URL.Path, "error", err)
		response.RespondInternalServerError(w, "An unexpected error occurred")
		return
	}

	fields := filters.FieldList()
	if len(fields) == 0 {
		response.RespondJSON(w, http.StatusOK, pms)
		return
	}

	projected := make([]map[string]any, 0, len(pms))
	for i := range pms {
		p, err := pms[i].Project(fields)
		if err != nil {
			slog.Error("Failed to project payment method", "id", pms[i].ID, "error", err)
			response.RespondInternalServerError(w, "An unexpected error occurred")
			return
		}
		projected = append(projected, p)
	}

	response.RespondJSON(w, http.StatusOK, projected)
}

// Update handles PATCH /paymentMethod/{id}.
func (h *PaymentMethodsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "Payment method")
	if !ok {
		return
	}

	var patch models.UpdatePaymentMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		slog.Warn("Invalid request body for update", "method", r.Method, "path", r.URL.Path, "id", id, "error", err)
		response.RespondBadRequest(w, "Invalid request body")
		return
	}

	pm, err := h.service.UpdatePaymentMethod(r.Context(), id, &patch)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			response.RespondNotFound(w, "Payment method not found")
		case errors.Is(err, apperrors.ErrValidation):
			response.RespondBadRequest(w, err.Error())
		default:
			slog.Error("Failed to update payment method", "method", r.Method, "path", r.URL.Path, "id", id, "error", err)
			response.RespondInternalServerError(w, "An unexpected error occurred")
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, pm)
}

// Delete handles DELETE /paymentMethod/{id}.
func (h *PaymentMethodsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "Payment method")
	if !ok {
		return
	}

	if err := h.service.DeletePaymentMethod(r.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.RespondNotFound(w, "Payment method not found")
			return
		}
		slog.Error("Failed to delete payment method", "method", r.Method, "path", r.URL.Path, "id", id, "error", err)
		response.RespondInternalServerError(w, "An unexpected error occurred")
		return
	}

	response.RespondNoContent(w)
}

// parseIDParam extracts and parses the {id} path parameter. On failure it writes
// a 400 response and returns ok=false.
func parseIDParam(w http.ResponseWriter, r *http.Request, resource string) (uuid.UUID, bool) {
	idStr := r.PathValue("id")
	if idStr == "" {
		response.RespondBadRequest(w, resource+" ID is required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		response.RespondBadRequest(w, "Invalid UUID format")
		return uuid.Nil, false
	}

	return id, true
}

// fieldsParam parses the fields query parameter for single-resource fetches.
func fieldsParam(r *http.Request) []string {
	f := models.ListPaymentMethodsFilters{Fields: r.URL.Query().Get("fields")}

	return f.FieldList()
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/KJithathma/tmf670-payment-method-api/internal/api/response"
	"github.com/KJithathma/tmf670-payment-method-api/internal/apperrors"
	"github.com/KJithathma/tmf670-payment-method-api/internal/models"
)

// UsersService defines the interface for user management logic.
type UsersService interface {
	CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// UsersHandler handles HTTP requests for users.
type UsersHandler struct {
	service UsersService
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(service UsersService) *UsersHandler {
	return &UsersHandler{service: service}
}

// Create handles POST /users.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Invalid request body", "method", r.Method, "path", r.URL.Path, "error", err)
		response.RespondBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.service.CreateUser(r.Context(), &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			response.RespondConflict(w, err.Error())
			return
		}
		slog.Error("Failed to create user", "method", r.Method, "path", r.URL.Path, "error", err)
		response.RespondInternalServerError(w, "An unexpected error occurred")
		return
	}

	response.RespondJSON(w, http.StatusCreated, models.CreateUserResponse{ID: user.ID})
}

// List handles GET /users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		slog.Error("Failed to list users", "method", r.Method, "path", r.URL.Path, "error", err)
		response.RespondInternalServerError(w, "An unexpected error occurred")
		return
	}

	response.RespondJSON(w, http.StatusOK, users)
}

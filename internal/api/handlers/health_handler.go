package handlers

import (
	"log/slog"
	"net/http"
)

// HealthHandler handles the root banner and health check requests.
type HealthHandler struct{}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Root handles GET /, returning a plain text running banner.
func (h *HealthHandler) Root(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("TMF670 Payment Method API is running")); err != nil {
		slog.Error("Failed to write root response", "error", err)
	}
}

// Check handles GET /health.
func (h *HealthHandler) Check(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		slog.Error("Failed to write health check response", "error", err)
	}
}

// internal/app/features/services/handler.go
package services

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Handler serves the service-to-service API surface. These endpoints are
// session-free so external integrations can probe them.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// ServeHealth handles GET /api/services/health.
func (h *Handler) ServeHealth(w http.ResponseWriter, r *http.Request) {
	h.Log.Debug("services health check called")
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "API Services",
	})
}

// ServeExample handles GET /api/services/example.
func (h *Handler) ServeExample(w http.ResponseWriter, r *http.Request) {
	h.Log.Debug("services example endpoint called")
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"data": "This is an example API endpoint for services",
	})
}

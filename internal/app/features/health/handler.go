// internal/app/features/health/handler.go
package health

import (
	"context"
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/panelboard/panelboard/internal/app/store/cache"
	"github.com/panelboard/panelboard/internal/app/system/timeouts"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	Client *mongo.Client
	Cache  *cache.Client
	Log    *zap.Logger
}

// NewHandler constructs a health Handler over the Mongo and Redis clients.
func NewHandler(client *mongo.Client, cacheClient *cache.Client, logger *zap.Logger) *Handler {
	return &Handler{
		Client: client,
		Cache:  cacheClient,
		Log:    logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache,omitempty"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "cache":"connected" }
//
// On DB failure: 503 and
//
//	{ "status":"error", "database":"disconnected", "message":"Database unavailable", "error":"…" }
//
// A cache failure is reported in the body but does not fail the check; the
// app degrades to uncached reads.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Database: "connected",
	}

	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	resp.Cache = "connected"
	if err := h.Cache.Ping(ctx); err != nil {
		h.Log.Warn("health-check: redis ping failed", zap.Error(err))
		resp.Cache = "disconnected"
	}

	_ = json.NewEncoder(w).Encode(resp)
}

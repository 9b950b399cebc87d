// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/panelboard/panelboard/internal/app/store/cache"
	"github.com/panelboard/panelboard/internal/app/system/timeouts"
)

// snapshotCacheKey is where the assembled dashboard payload lives in Redis.
const snapshotCacheKey = "dashboard:snapshot"

// snapshotCacheTTL keeps the payload fresh enough for a dashboard while
// absorbing bursts of page loads.
const snapshotCacheTTL = 30 * time.Second

type Handler struct {
	Source Source
	Cache  *cache.Client
	Log    *zap.Logger
}

func NewHandler(source Source, cacheClient *cache.Client, logger *zap.Logger) *Handler {
	return &Handler{
		Source: source,
		Cache:  cacheClient,
		Log:    logger,
	}
}

// ServeDashboard handles GET /api/frontend/dashboard.
//
// The cached snapshot is served when present; otherwise a fresh one is
// computed and cached. Cache errors are logged and treated as misses so
// Redis being down never breaks the dashboard.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	var snap Snapshot
	hit, err := h.Cache.GetJSON(ctx, snapshotCacheKey, &snap)
	if err != nil {
		h.Log.Warn("dashboard: cache read failed", zap.Error(err))
		hit = false
	}

	if !hit {
		snap, err = h.Source.Snapshot(ctx)
		if err != nil {
			h.Log.Error("dashboard: snapshot failed", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "failed to load dashboard data"})
			return
		}
		if err := h.Cache.SetJSON(ctx, snapshotCacheKey, snap, snapshotCacheTTL); err != nil {
			h.Log.Warn("dashboard: cache write failed", zap.Error(err))
		}
	}

	_ = json.NewEncoder(w).Encode(snap)
}

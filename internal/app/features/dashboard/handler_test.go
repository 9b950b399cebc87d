// internal/app/features/dashboard/handler_test.go
package dashboard_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/panelboard/panelboard/internal/app/features/dashboard"
	metricsstore "github.com/panelboard/panelboard/internal/app/store/metrics"
)

type fakeSource struct {
	snap  dashboard.Snapshot
	err   error
	calls int
}

func (f *fakeSource) Snapshot(ctx context.Context) (dashboard.Snapshot, error) {
	f.calls++
	return f.snap, f.err
}

func TestServeDashboard_Success(t *testing.T) {
	src := &fakeSource{
		snap: dashboard.Snapshot{
			Stats: metricsstore.Stats{Users: 5, ActiveSessions: 2, PendingTasks: 1},
			RecentActivities: []dashboard.Activity{
				{
					ID:        primitive.NewObjectID().Hex(),
					Action:    "Login",
					Timestamp: time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC),
				},
			},
		},
	}
	// Nil cache client behaves as a permanent miss.
	handler := dashboard.NewHandler(src, nil, zap.NewNop())

	req := httptest.NewRequest("GET", "/api/frontend/dashboard", nil)
	rec := httptest.NewRecorder()

	handler.ServeDashboard(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json")
	}

	var resp struct {
		Stats struct {
			Users          int64 `json:"users"`
			ActiveSessions int64 `json:"active_sessions"`
			PendingTasks   int64 `json:"pending_tasks"`
		} `json:"stats"`
		RecentActivities []struct {
			ID     string `json:"id"`
			Action string `json:"action"`
		} `json:"recent_activities"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response JSON: %v", err)
	}

	if resp.Stats.Users != 5 || resp.Stats.ActiveSessions != 2 || resp.Stats.PendingTasks != 1 {
		t.Errorf("stats: got %+v", resp.Stats)
	}
	if len(resp.RecentActivities) != 1 {
		t.Fatalf("recent_activities: got %d entries, want 1", len(resp.RecentActivities))
	}
	if resp.RecentActivities[0].Action != "Login" {
		t.Errorf("activity action: got %q, want %q", resp.RecentActivities[0].Action, "Login")
	}
	if src.calls != 1 {
		t.Errorf("source calls: got %d, want 1", src.calls)
	}
}

func TestServeDashboard_SourceFailure(t *testing.T) {
	src := &fakeSource{err: errors.New("db down")}
	handler := dashboard.NewHandler(src, nil, zap.NewNop())

	req := httptest.NewRequest("GET", "/api/frontend/dashboard", nil)
	rec := httptest.NewRecorder()

	handler.ServeDashboard(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response JSON: %v", err)
	}
	if resp["error"] == "" {
		t.Error("expected error field in failure response")
	}
}

func TestServeDashboard_EmptyFeed(t *testing.T) {
	src := &fakeSource{
		snap: dashboard.Snapshot{
			Stats:            metricsstore.Stats{},
			RecentActivities: []dashboard.Activity{},
		},
	}
	handler := dashboard.NewHandler(src, nil, zap.NewNop())

	req := httptest.NewRequest("GET", "/api/frontend/dashboard", nil)
	rec := httptest.NewRecorder()

	handler.ServeDashboard(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response JSON: %v", err)
	}
	// An empty feed must serialize as [], not null, so the frontend can
	// iterate it without a guard.
	if string(resp["recent_activities"]) != "[]" {
		t.Errorf("recent_activities: got %s, want []", resp["recent_activities"])
	}
}

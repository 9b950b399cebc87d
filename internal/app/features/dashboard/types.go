// internal/app/features/dashboard/types.go
package dashboard

import (
	"time"

	metricsstore "github.com/panelboard/panelboard/internal/app/store/metrics"
)

// Activity is one entry of the recent-activity feed as served to the
// frontend.
type Activity struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// Snapshot is the full dashboard payload. It is what gets cached and what
// GET /api/frontend/dashboard returns.
type Snapshot struct {
	Stats            metricsstore.Stats `json:"stats"`
	RecentActivities []Activity         `json:"recent_activities"`
}

// client/types.go
package client

import "time"

// Session is the profile record returned by GET /api/frontend/user. It is
// replaced wholesale on each fetch and never partially mutated.
type Session struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	ID              string `json:"id"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Role            string `json:"role"`
}

// Stats are the aggregate counters shown at the top of the dashboard.
type Stats struct {
	Users          int64 `json:"users"`
	ActiveSessions int64 `json:"active_sessions"`
	PendingTasks   int64 `json:"pending_tasks"`
}

// ActivityEntry is one row of the recent-activity feed.
type ActivityEntry struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// Snapshot is the full dashboard payload, immutable once fetched and
// replaced wholesale by the next load.
type Snapshot struct {
	Stats            Stats           `json:"stats"`
	RecentActivities []ActivityEntry `json:"recent_activities"`
}

// FormatTimestamp renders an activity timestamp for display in the local
// time zone. Presentation only; the wire format stays RFC 3339.
func FormatTimestamp(t time.Time) string {
	return t.Local().Format("Jan 2, 2006 15:04")
}

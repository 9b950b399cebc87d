package metricsstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ActiveWindow is how recently a session must have been active to count
// toward the active_sessions statistic.
const ActiveWindow = 15 * time.Minute

// Stats is the set of totals shown on the dashboard.
type Stats struct {
	Users          int64 `json:"users"`
	ActiveSessions int64 `json:"active_sessions"`
	PendingTasks   int64 `json:"pending_tasks"`
}

// FetchDashboardStats returns the high-level counts used by the dashboard.
// Intentionally tolerant: on error a counter stays 0 so one failing
// collection does not take down the whole dashboard.
func FetchDashboardStats(ctx context.Context, db *mongo.Database) Stats {
	var out Stats

	if n, err := db.Collection("users").CountDocuments(ctx, bson.M{}); err == nil {
		out.Users = n
	}

	cutoff := time.Now().UTC().Add(-ActiveWindow)
	activeFilter := bson.M{
		"logout_at":      nil,
		"last_active_at": bson.M{"$gte": cutoff},
	}
	if n, err := db.Collection("sessions").CountDocuments(ctx, activeFilter); err == nil {
		out.ActiveSessions = n
	}

	if n, err := db.Collection("tasks").CountDocuments(ctx, bson.M{"status": "pending"}); err == nil {
		out.PendingTasks = n
	}

	return out
}

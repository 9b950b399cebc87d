// internal/app/features/dashboard/source.go
package dashboard

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/panelboard/panelboard/internal/app/store/activity"
	metricsstore "github.com/panelboard/panelboard/internal/app/store/metrics"
)

// Source produces a fresh dashboard snapshot. The handler depends on this
// interface so tests can substitute a canned source.
type Source interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}

// recentActivityLimit caps the feed served to the frontend.
const recentActivityLimit = 10

// MongoSource assembles snapshots from the live database.
type MongoSource struct {
	DB       *mongo.Database
	Activity *activity.Store
}

// NewMongoSource creates a snapshot source over the given database.
func NewMongoSource(db *mongo.Database) *MongoSource {
	return &MongoSource{
		DB:       db,
		Activity: activity.New(db),
	}
}

// Snapshot computes stats and the recent-activity feed. Stat counters
// degrade to zero individually on query errors; the activity feed error is
// surfaced because an empty feed and a failed feed look different to users.
func (s *MongoSource) Snapshot(ctx context.Context) (Snapshot, error) {
	stats := metricsstore.FetchDashboardStats(ctx, s.DB)

	events, err := s.Activity.Recent(ctx, recentActivityLimit)
	if err != nil {
		return Snapshot{}, err
	}

	acts := make([]Activity, 0, len(events))
	for _, e := range events {
		acts = append(acts, Activity{
			ID:        e.ID.Hex(),
			Action:    e.Action,
			Timestamp: e.Timestamp,
		})
	}

	return Snapshot{Stats: stats, RecentActivities: acts}, nil
}

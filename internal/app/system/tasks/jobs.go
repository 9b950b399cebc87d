// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/panelboard/panelboard/internal/app/store/cache"
	metricsstore "github.com/panelboard/panelboard/internal/app/store/metrics"
	"github.com/panelboard/panelboard/internal/app/store/sessions"
	taskstore "github.com/panelboard/panelboard/internal/app/store/tasks"
	"github.com/panelboard/panelboard/internal/app/system/mailer"
)

// InactiveSessionCleanupJob closes sessions that have been inactive for the
// given threshold. Closed sessions are marked as ended rather than deleted so
// they still count toward login history.
func InactiveSessionCleanupJob(sessStore *sessions.Store, logger *zap.Logger, threshold time.Duration) Job {
	return Job{
		Name:     "inactive-session-cleanup",
		Interval: 1 * time.Minute,
		Run: func(ctx context.Context) error {
			count, err := sessStore.CloseInactive(ctx, threshold)
			if err != nil {
				return err
			}
			if count > 0 {
				logger.Info("closed inactive sessions",
					zap.Int64("count", count),
					zap.Duration("threshold", threshold))
			}
			return nil
		},
	}
}

// StaleTaskSweepJob re-queues tasks stuck in the running state, usually left
// behind by a crashed worker.
func StaleTaskSweepJob(store *taskstore.Store, logger *zap.Logger, threshold time.Duration) Job {
	return Job{
		Name:     "stale-task-sweep",
		Interval: 5 * time.Minute,
		Run: func(ctx context.Context) error {
			count, err := store.SweepStale(ctx, threshold)
			if err != nil {
				return err
			}
			if count > 0 {
				logger.Info("re-queued stale tasks", zap.Int64("count", count))
			}
			return nil
		},
	}
}

// DailyStatusReportJob emails a system status summary every morning at the
// given local time. A nil mailer or empty recipient disables the job's send
// but the stats are still computed and logged.
func DailyStatusReportJob(db *mongo.Database, cacheClient *cache.Client, m *mailer.Mailer, recipient, siteName string, at *ClockTime, logger *zap.Logger) Job {
	return Job{
		Name:    "daily-status-report",
		DailyAt: at,
		Run: func(ctx context.Context) error {
			stats := metricsstore.FetchDashboardStats(ctx, db)

			dbOK := db.Client().Ping(ctx, nil) == nil
			cacheOK := cacheClient.Ping(ctx) == nil

			logger.Info("system status",
				zap.Bool("database_ok", dbOK),
				zap.Bool("cache_ok", cacheOK),
				zap.Int64("users", stats.Users),
				zap.Int64("active_sessions", stats.ActiveSessions),
				zap.Int64("pending_tasks", stats.PendingTasks))

			if m == nil || recipient == "" {
				return nil
			}

			email := mailer.BuildStatusReportEmail(mailer.StatusReportData{
				SiteName:       siteName,
				GeneratedAt:    time.Now(),
				Users:          stats.Users,
				ActiveSessions: stats.ActiveSessions,
				PendingTasks:   stats.PendingTasks,
				DatabaseOK:     dbOK,
				CacheOK:        cacheOK,
			})
			email.To = recipient
			return m.Send(ctx, email)
		},
	}
}

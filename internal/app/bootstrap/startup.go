// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/panelboard/panelboard/internal/app/store/sessions"
	taskstore "github.com/panelboard/panelboard/internal/app/store/tasks"
	userstore "github.com/panelboard/panelboard/internal/app/store/users"
	"github.com/panelboard/panelboard/internal/app/system/mailer"
	"github.com/panelboard/panelboard/internal/app/system/tasks"
	"github.com/panelboard/panelboard/internal/domain/models"
)

// runner holds the background job scheduler between Startup and Shutdown.
var runner *tasks.Runner

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It seeds
// the bootstrap admin and starts the background job runner.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := ensureAdmin(ctx, deps, appCfg, logger); err != nil {
		return err
	}

	var m *mailer.Mailer
	if appCfg.StatusReportTo != "" {
		m = mailer.New(mailer.Config{
			Host:     appCfg.MailSMTPHost,
			Port:     appCfg.MailSMTPPort,
			Username: appCfg.MailSMTPUser,
			Password: appCfg.MailSMTPPass,
			From:     appCfg.MailFrom,
			FromName: appCfg.MailFromName,
		}, logger)
	}

	runner = tasks.NewRunner(logger,
		tasks.InactiveSessionCleanupJob(sessions.New(deps.MongoDatabase), logger, appCfg.sessionInactiveAfter()),
		tasks.StaleTaskSweepJob(taskstore.New(deps.MongoDatabase), logger, 10*time.Minute),
		tasks.DailyStatusReportJob(
			deps.MongoDatabase,
			deps.Cache,
			m,
			appCfg.StatusReportTo,
			appCfg.SiteName,
			tasks.Daily(appCfg.StatusReportHour, 0),
			logger,
		),
	)
	runner.Start()

	return nil
}

// ensureAdmin creates the bootstrap admin account when the user collection
// is empty and admin_password is configured. Existing installs are left
// untouched.
func ensureAdmin(ctx context.Context, deps DBDeps, appCfg AppConfig, logger *zap.Logger) error {
	users := userstore.New(deps.MongoDatabase)

	count, err := users.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}
	if appCfg.AdminPassword == "" {
		logger.Warn("no users exist and admin_password is not set; no admin account created")
		return nil
	}

	u, err := users.Create(ctx, models.User{
		Username:   appCfg.AdminUsername,
		Email:      appCfg.AdminEmail,
		AuthMethod: models.AuthMethodInternal,
		Role:       models.RoleAdmin,
		Status:     models.StatusActive,
	}, appCfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}

	logger.Info("created bootstrap admin",
		zap.String("user_id", u.ID.Hex()),
		zap.String("username", u.Username))
	return nil
}

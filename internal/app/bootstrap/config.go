// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for PanelBoard.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: PANELBOARD_MONGO_URI, PANELBOARD_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "panelboard", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "redis_url", Default: "", Desc: "Redis URL for the dashboard cache (blank disables caching)"},

	{Name: "session_key", Default: "", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "panelboard_session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_inactive_after", Default: "30m", Desc: "Idle time before a session is closed (e.g., 30m, 1h)"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "localhost", Desc: "SMTP server host"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@panelboard.local", Desc: "From email address"},
	{Name: "mail_from_name", Default: "PanelBoard", Desc: "From display name"},

	// Daily status report
	{Name: "status_report_to", Default: "", Desc: "Recipient for the daily status email (blank disables it)"},
	{Name: "status_report_hour", Default: 8, Desc: "Local hour of day for the daily status email"},

	// Google OAuth configuration
	{Name: "google_client_id", Default: "", Desc: "Google OAuth2 client ID"},
	{Name: "google_client_secret", Default: "", Desc: "Google OAuth2 client secret"},

	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL for OAuth callbacks"},

	// Admin bootstrap
	{Name: "admin_username", Default: "admin", Desc: "Username of the bootstrap admin (created when no users exist)"},
	{Name: "admin_password", Default: "", Desc: "Password of the bootstrap admin (blank skips creation)"},
	{Name: "admin_email", Default: "", Desc: "Email of the bootstrap admin"},

	{Name: "site_name", Default: "PanelBoard", Desc: "Display name used in emails"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, PANELBOARD_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "PANELBOARD", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		RedisURL: appValues.String("redis_url"),

		SessionKey:           appValues.String("session_key"),
		SessionName:          appValues.String("session_name"),
		SessionDomain:        appValues.String("session_domain"),
		SessionInactiveAfter: appValues.String("session_inactive_after"),

		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),

		StatusReportTo:   appValues.String("status_report_to"),
		StatusReportHour: appValues.Int("status_report_hour"),

		GoogleClientID:     appValues.String("google_client_id"),
		GoogleClientSecret: appValues.String("google_client_secret"),

		BaseURL: appValues.String("base_url"),

		AdminUsername: appValues.String("admin_username"),
		AdminPassword: appValues.String("admin_password"),
		AdminEmail:    appValues.String("admin_email"),

		SiteName: appValues.String("site_name"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation before anything
// connects. The MongoDB URI format is checked here to fail fast on typos.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if _, err := time.ParseDuration(appCfg.SessionInactiveAfter); err != nil {
		return fmt.Errorf("invalid session_inactive_after: %w", err)
	}

	if appCfg.StatusReportHour < 0 || appCfg.StatusReportHour > 23 {
		return fmt.Errorf("status_report_hour must be 0-23, got %d", appCfg.StatusReportHour)
	}

	return nil
}

// sessionInactiveAfter returns the parsed idle threshold. ValidateConfig has
// already rejected unparseable values.
func (c AppConfig) sessionInactiveAfter() time.Duration {
	d, err := time.ParseDuration(c.SessionInactiveAfter)
	if err != nil {
		return 30 * time.Minute
	}
	return d
}

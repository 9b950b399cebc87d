// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS, logging,
// CORS, timeouts); AppConfig is everything specific to PanelBoard.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Redis cache. Blank disables caching; the app then recomputes the
	// dashboard snapshot on every request.
	RedisURL string

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions
	SessionDomain string // Cookie domain (blank means current host)

	// How long a session may idle before the cleanup job closes it.
	SessionInactiveAfter string

	// Email/SMTP configuration
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string

	// Daily status report. Blank recipient disables the email; the stats
	// are still computed and logged.
	StatusReportTo   string
	StatusReportHour int

	// Google OAuth configuration
	GoogleClientID     string
	GoogleClientSecret string

	// Base URL for OAuth callbacks, e.g. "https://panelboard.example.com"
	BaseURL string

	// Admin bootstrap: created on startup when no users exist.
	AdminUsername string
	AdminPassword string
	AdminEmail    string

	SiteName string
}

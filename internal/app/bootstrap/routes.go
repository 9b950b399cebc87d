// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authgooglefeature "github.com/panelboard/panelboard/internal/app/features/authgoogle"
	dashboardfeature "github.com/panelboard/panelboard/internal/app/features/dashboard"
	healthfeature "github.com/panelboard/panelboard/internal/app/features/health"
	loginfeature "github.com/panelboard/panelboard/internal/app/features/login"
	logoutfeature "github.com/panelboard/panelboard/internal/app/features/logout"
	servicesfeature "github.com/panelboard/panelboard/internal/app/features/services"
	userinfofeature "github.com/panelboard/panelboard/internal/app/features/userinfo"
	"github.com/panelboard/panelboard/internal/app/store/activity"
	"github.com/panelboard/panelboard/internal/app/store/sessions"
	userstore "github.com/panelboard/panelboard/internal/app/store/users"
	"github.com/panelboard/panelboard/internal/app/system/auth"
	"github.com/panelboard/panelboard/internal/app/system/requestid"
)

// BuildHandler constructs the root HTTP handler for the app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. It creates the session manager, mounts
// the feature routers, and serves the frontend's static bundle.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Fresh user data is fetched on each request so role changes and
	// disabled accounts take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	// Each authenticated request advances the tracked session's activity
	// timestamp, feeding the active-session counter and keeping the
	// idle-cleanup job from closing sessions that are still in use.
	sessionMgr.SetSessionToucher(sessions.NewToucher(deps.MongoDatabase))

	users := userstore.New(deps.MongoDatabase)
	sessStore := sessions.New(deps.MongoDatabase)
	activityStore := activity.New(deps.MongoDatabase)

	r := chi.NewRouter()

	r.Use(requestid.Middleware)
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, deps.Cache, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Authentication
	loginHandler := loginfeature.NewHandler(users, sessStore, activityStore, sessionMgr, logger)
	loginfeature.MountRoutes(r, loginHandler)

	logoutHandler := logoutfeature.NewHandler(sessStore, activityStore, sessionMgr, logger)
	logoutfeature.MountRoutes(r, logoutHandler, sessionMgr)

	googleHandler := authgooglefeature.NewHandler(
		users, sessStore, activityStore, sessionMgr,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL,
		secure, logger,
	)
	authgooglefeature.MountRoutes(r, googleHandler)

	// Frontend data API
	userinfofeature.MountRoutes(r, userinfofeature.NewHandler())

	dashboardHandler := dashboardfeature.NewHandler(
		dashboardfeature.NewMongoSource(deps.MongoDatabase),
		deps.Cache,
		logger,
	)
	dashboardfeature.MountRoutes(r, dashboardHandler, sessionMgr)

	// Service-to-service API
	servicesHandler := servicesfeature.NewHandler(logger)
	r.Mount("/api/services", servicesfeature.Routes(servicesHandler))

	return r, nil
}

// internal/app/features/dashboard/routes.go
package dashboard

import (
	"github.com/go-chi/chi/v5"

	"github.com/panelboard/panelboard/internal/app/system/auth"
)

// MountRoutes registers GET /api/frontend/dashboard behind the signed-in
// check.
func MountRoutes(r chi.Router, h *Handler, sm *auth.SessionManager) {
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/api/frontend/dashboard", h.ServeDashboard)
	})
}

// internal/app/features/logout/routes.go
package logout

import (
	"github.com/go-chi/chi/v5"

	"github.com/panelboard/panelboard/internal/app/system/auth"
)

// MountRoutes registers the logout endpoint behind the signed-in check.
func MountRoutes(r chi.Router, h *Handler, sm *auth.SessionManager) {
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Post("/logout", h.ServeLogout)
	})
}

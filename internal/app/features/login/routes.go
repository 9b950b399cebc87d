// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

// MountRoutes registers the login endpoint on the supplied router.
func MountRoutes(r chi.Router, h *Handler) {
	r.Post("/login", h.HandleLoginPost)
}

// internal/app/features/services/routes.go
package services

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for mounting under /api/services.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/health", h.ServeHealth)
	r.Get("/example", h.ServeExample)
	return r
}

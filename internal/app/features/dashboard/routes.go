// internal/app/features/dashboard/routes.go
package dashboard

import "github.com/go-chi/chi/v5"

// MountRoutes adds /me and /dashboard to the admin router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/me", h.Me)
	r.Get("/dashboard", h.Serve)
}

// internal/app/features/admins/routes.go
package admins

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// AdminRoutes is mounted at /api/admin/admins behind the admin guard.
// onlySuper gates every change to admin accounts.
func AdminRoutes(h *Handler, onlySuper func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Group(func(r chi.Router) {
		r.Use(onlySuper)
		r.Post("/", h.Create)
		r.Patch("/{email}", h.Update)
		r.Delete("/{email}", h.Delete)
	})
	return r
}

// internal/app/features/uploads/routes.go
package uploads

import "github.com/go-chi/chi/v5"

// AdminRoutes is mounted at /api/admin/uploads.
func AdminRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Upload)
	return r
}

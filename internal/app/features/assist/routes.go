// internal/app/features/assist/routes.go
package assist

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// AdminRoutes is mounted at /api/admin/assist.
func AdminRoutes(h *Handler, limit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	if limit != nil {
		r.Use(limit)
	}
	r.Post("/improve", h.Improve)
	return r
}

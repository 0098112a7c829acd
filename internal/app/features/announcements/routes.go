// internal/app/features/announcements/routes.go
package announcements

import (
	"github.com/go-chi/chi/v5"
	"github.com/ihsb/ihsbsite/internal/app/features/shared/crudapi"
	"github.com/ihsb/ihsbsite/internal/domain/models"
)

// PublicRoutes is mounted at /api/announcements.
func PublicRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListLive)
	r.Get("/{id}", h.GetLive)
	return r
}

// AdminRoutes is mounted at /api/admin/announcements. Admins see every
// announcement, live or not.
func AdminRoutes(h *Handler) chi.Router {
	return crudapi.New[models.Announcement](h.Store, collection, h.Notify, h.Log).Routes()
}

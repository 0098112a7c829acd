// internal/app/features/events/routes.go
package events

import (
	"github.com/go-chi/chi/v5"
	"github.com/ihsb/ihsbsite/internal/app/features/shared/crudapi"
	"github.com/ihsb/ihsbsite/internal/domain/models"
)

// PublicRoutes is mounted at /api/events.
func PublicRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListPublic)
	r.Get("/{id}", h.GetPublic)
	return r
}

// AdminRoutes is mounted at /api/admin/events behind the admin guard.
func AdminRoutes(h *Handler) chi.Router {
	api := crudapi.New[models.Event](h.Store, collection, h.Notify, h.Log)
	api.Query = h.adminList
	return api.Routes()
}

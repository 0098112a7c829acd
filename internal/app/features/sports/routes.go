// internal/app/features/sports/routes.go
package sports

import (
	"github.com/go-chi/chi/v5"
	"github.com/ihsb/ihsbsite/internal/app/features/shared/crudapi"
	"github.com/ihsb/ihsbsite/internal/domain/models"
)

func PublicRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/slug/{slug}", h.BySlug)
	r.Get("/{id}", h.Get)
	return r
}

// AdminRoutes serves CRUD by id. The slug is fixed at creation; a PUT that
// changes it is rejected.
func AdminRoutes(h *Handler) chi.Router {
	api := crudapi.New[models.SportsAchievement](h.Store, collection, h.Notify, h.Log)
	api.Query = h.filter
	return api.Routes()
}

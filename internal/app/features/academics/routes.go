// internal/app/features/academics/routes.go
package academics

import (
	"github.com/go-chi/chi/v5"
	"github.com/ihsb/ihsbsite/internal/app/features/shared/crudapi"
	"github.com/ihsb/ihsbsite/internal/domain/models"
)

func PublicRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	return r
}

func AdminRoutes(h *Handler) chi.Router {
	api := crudapi.New[models.AcademicAchievement](h.Store, collection, h.Notify, h.Log)
	api.Query = h.search
	return api.Routes()
}

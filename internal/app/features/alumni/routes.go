// internal/app/features/alumni/routes.go
package alumni

import (
	"github.com/go-chi/chi/v5"
	"github.com/ihsb/ihsbsite/internal/app/features/shared/crudapi"
	"github.com/ihsb/ihsbsite/internal/domain/models"
)

// PublicRoutes is mounted at /api/alumni.
func PublicRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/featured", h.ListFeatured)
	r.Get("/featured/{id}", h.GetFeatured)
	r.Get("/stories", h.ListStories)
	r.Get("/stories/{id}", h.GetStory)
	r.Get("/year-stats", h.ListYearStats)
	return r
}

// AdminRoutes is mounted at /api/admin/alumni.
func AdminRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Mount("/featured", crudapi.New[models.FeaturedAlumnus](h.Featured, featuredCollection, h.Notify, h.Log).Routes())
	r.Mount("/stories", crudapi.New[models.AlumniStory](h.Stories, storyCollection, h.Notify, h.Log).Routes())
	r.Route("/year-stats", func(r chi.Router) {
		r.Post("/recalculate", h.Recalculate)
		r.Get("/{id}/count", h.CountForYear)
		crudapi.New[models.AlumniYearStats](h.YearStats, yearStatsCollection, h.Notify, h.Log).Mount(r)
	})
	return r
}

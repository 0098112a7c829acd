// internal/app/features/admissions/routes.go
package admissions

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ihsb/ihsbsite/internal/app/features/shared/crudapi"
	"github.com/ihsb/ihsbsite/internal/domain/models"
)

// PublicRoutes is mounted at /api/admissions. limit wraps the form
// endpoints; pass nil to leave them unthrottled.
func PublicRoutes(h *Handler, limit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	if limit != nil {
		r.Use(limit)
	}
	r.Post("/", h.Submit)
	if h.Uploads != nil {
		r.Post("/documents", h.Uploads.UploadTo("admissions"))
	}
	return r
}

// AdminRoutes is mounted at /api/admin/admissions. Changing an
// application's status, by PUT or PATCH /{id}/status, emails the guardian.
func AdminRoutes(h *Handler) chi.Router {
	api := crudapi.New[models.Admission](h.Store, collection, h.Notify, h.Log)
	api.Query = h.adminList
	api.AfterUpdate = h.statusChanged

	r := chi.NewRouter()
	api.Mount(r)
	r.Patch("/{id}/status", h.UpdateStatus)
	return r
}

package alumni

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ihsb/ihsbsite/internal/app/features/shared/crudapi"
	"github.com/ihsb/ihsbsite/internal/app/system/jsonresp"
	"github.com/ihsb/ihsbsite/internal/domain/models"
)

var featuredCollection = crudapi.Config[models.FeaturedAlumnus]{
	Kind:     "featured_alumni",
	Singular: "alumnus",
	Plural:   "alumni",
	HrefBase: "/admin/alumni/featured",
	Title:    func(a models.FeaturedAlumnus) string { return a.Name },
}

// ListFeatured handles GET /api/alumni/featured[?year=].
func (h *Handler) ListFeatured(w http.ResponseWriter, r *http.Request) {
	items, err := h.Featured.Featured(r.Context(), r.URL.Query().Get("year"))
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}
	jsonresp.OK(w, jsonresp.M{"alumni": models.Redacted(items)})
}

// GetFeatured handles GET /api/alumni/featured/{id}. Profiles not flagged
// as featured are not public.
func (h *Handler) GetFeatured(w http.ResponseWriter, r *http.Request) {
	a, err := h.Featured.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}
	if !a.Featured {
		jsonresp.Error(w, r, h.Log, errAlumnusNotFound)
		return
	}
	a.Redact()
	jsonresp.OK(w, jsonresp.M{"alumnus": a})
}

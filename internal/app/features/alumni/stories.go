package alumni

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ihsb/ihsbsite/internal/app/features/shared/crudapi"
	"github.com/ihsb/ihsbsite/internal/app/system/formutil"
	"github.com/ihsb/ihsbsite/internal/app/system/jsonresp"
	"github.com/ihsb/ihsbsite/internal/domain/models"
)

var storyCollection = crudapi.Config[models.AlumniStory]{
	Kind:     "alumni_story",
	Singular: "story",
	Plural:   "stories",
	HrefBase: "/admin/alumni/stories",
	Title:    func(s models.AlumniStory) string { return s.Title },
}

// ListStories handles GET /api/alumni/stories[?featured=true]. Drafts are
// never listed.
func (h *Handler) ListStories(w http.ResponseWriter, r *http.Request) {
	var (
		items []models.AlumniStory
		err   error
	)
	if formutil.QueryBool(r, "featured") {
		items, err = h.Stories.PublishedFeatured(r.Context())
	} else {
		items, err = h.Stories.Published(r.Context())
	}
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}
	jsonresp.OK(w, jsonresp.M{"stories": models.Redacted(items)})
}

// GetStory handles GET /api/alumni/stories/{id}.
func (h *Handler) GetStory(w http.ResponseWriter, r *http.Request) {
	s, err := h.Stories.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}
	if !s.Published {
		jsonresp.Error(w, r, h.Log, errStoryNotFound)
		return
	}
	s.Redact()
	jsonresp.OK(w, jsonresp.M{"story": s})
}

// internal/app/features/sports/handler.go
package sports

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"github.com/ihsb/ihsbsite/internal/app/features/shared/crudapi"
	sportstore "github.com/ihsb/ihsbsite/internal/app/store/sports"
	"github.com/ihsb/ihsbsite/internal/app/system/jsonresp"
	"github.com/ihsb/ihsbsite/internal/app/system/normalize"
	"github.com/ihsb/ihsbsite/internal/app/system/notify"
	"github.com/ihsb/ihsbsite/internal/domain/models"
	"go.uber.org/zap"
)

var collection = crudapi.Config[models.SportsAchievement]{
	Kind:     "sports_achievement",
	Singular: "achievement",
	Plural:   "achievements",
	HrefBase: "/admin/sports-achievements",
	Title:    func(a models.SportsAchievement) string { return a.Title },
}

// Handler serves sports achievements. Public pages look them up by slug.
type Handler struct {
	Store  *sportstore.Store
	Notify *notify.Recorder
	Log    *zap.Logger
}

func NewHandler(store *sportstore.Store, rec *notify.Recorder, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Notify: rec, Log: logger}
}

// filter narrows the listing on ?sport=. Both the public and admin
// listings use it.
func (h *Handler) filter(r *http.Request) ([]models.SportsAchievement, error) {
	if v := normalize.QueryParam(query.Get(r, "sport")); v != "" {
		return h.Store.BySport(r.Context(), v)
	}
	return h.Store.GetAll(r.Context())
}

// List handles GET /api/sports-achievements[?sport=].
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.filter(r)
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}
	jsonresp.OK(w, jsonresp.M{"achievements": models.Redacted(items)})
}

// BySlug handles GET /api/sports-achievements/slug/{slug}.
func (h *Handler) BySlug(w http.ResponseWriter, r *http.Request) {
	a, err := h.Store.BySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}
	a.Redact()
	jsonresp.OK(w, jsonresp.M{"achievement": a})
}

// Get handles GET /api/sports-achievements/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.Store.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}
	a.Redact()
	jsonresp.OK(w, jsonresp.M{"achievement": a})
}

// internal/app/features/news/handler.go
package news

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"github.com/ihsb/ihsbsite/internal/app/features/shared/crudapi"
	newsstore "github.com/ihsb/ihsbsite/internal/app/store/news"
	"github.com/ihsb/ihsbsite/internal/app/system/jsonresp"
	"github.com/ihsb/ihsbsite/internal/app/system/normalize"
	"github.com/ihsb/ihsbsite/internal/app/system/notify"
	"github.com/ihsb/ihsbsite/internal/domain/models"
	"go.uber.org/zap"
)

var collection = crudapi.Config[models.NewsItem]{
	Kind:     "news",
	Singular: "news",
	Plural:   "news",
	HrefBase: "/admin/news",
	Title:    func(n models.NewsItem) string { return n.Title },
}

type Handler struct {
	Store  *newsstore.Store
	Notify *notify.Recorder
	Log    *zap.Logger
}

func NewHandler(store *newsstore.Store, rec *notify.Recorder, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Notify: rec, Log: logger}
}

// filter narrows the listing on ?category=. Both the public and admin
// listings use it.
func (h *Handler) filter(r *http.Request) ([]models.NewsItem, error) {
	if v := strings.ToLower(normalize.QueryParam(query.Get(r, "category"))); v != "" {
		return h.Store.ByCategory(r.Context(), v)
	}
	return h.Store.GetAll(r.Context())
}

// List handles GET /api/news[?category=].
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.filter(r)
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}
	jsonresp.OK(w, jsonresp.M{"news": models.Redacted(items)})
}

// Get handles GET /api/news/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	n, err := h.Store.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}
	n.Redact()
	jsonresp.OK(w, jsonresp.M{"news": n})
}

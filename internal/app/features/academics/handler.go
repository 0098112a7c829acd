// internal/app/features/academics/handler.go
package academics

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"github.com/ihsb/ihsbsite/internal/app/features/shared/crudapi"
	academicstore "github.com/ihsb/ihsbsite/internal/app/store/academics"
	"github.com/ihsb/ihsbsite/internal/app/system/jsonresp"
	"github.com/ihsb/ihsbsite/internal/app/system/normalize"
	"github.com/ihsb/ihsbsite/internal/app/system/notify"
	"github.com/ihsb/ihsbsite/internal/domain/models"
	"go.uber.org/zap"
)

var collection = crudapi.Config[models.AcademicAchievement]{
	Kind:     "academic_achievement",
	Singular: "achievement",
	Plural:   "achievements",
	HrefBase: "/admin/academic-achievements",
	Title:    func(a models.AcademicAchievement) string { return a.Name },
}

type Handler struct {
	Store  *academicstore.Store
	Notify *notify.Recorder
	Log    *zap.Logger
}

func NewHandler(store *academicstore.Store, rec *notify.Recorder, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Notify: rec, Log: logger}
}

// search filters on ?year= and ?session=. Both the public and admin
// listings use it.
func (h *Handler) search(r *http.Request) ([]models.AcademicAchievement, error) {
	year := normalize.QueryParam(query.Get(r, "year"))
	session := normalize.QueryParam(query.Get(r, "session"))
	return h.Store.Search(r.Context(), year, session)
}

// List handles GET /api/academic-achievements[?year=&session=].
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.search(r)
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}
	jsonresp.OK(w, jsonresp.M{"achievements": models.Redacted(items)})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.Store.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}
	a.Redact()
	jsonresp.OK(w, jsonresp.M{"achievement": a})
}

// internal/app/features/announcements/handler.go
package announcements

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ihsb/ihsbsite/internal/app/features/shared/crudapi"
	announcementstore "github.com/ihsb/ihsbsite/internal/app/store/announcements"
	"github.com/ihsb/ihsbsite/internal/app/system/apperr"
	"github.com/ihsb/ihsbsite/internal/app/system/formutil"
	"github.com/ihsb/ihsbsite/internal/app/system/jsonresp"
	"github.com/ihsb/ihsbsite/internal/app/system/notify"
	"github.com/ihsb/ihsbsite/internal/domain/models"
	"go.uber.org/zap"
)

var errNotLive = apperr.Missing("announcement not found")

var collection = crudapi.Config[models.Announcement]{
	Kind:     "announcement",
	Singular: "announcement",
	Plural:   "announcements",
	HrefBase: "/admin/announcements",
	Title:    func(a models.Announcement) string { return a.Title },
}

// Handler owns all announcement handlers.
type Handler struct {
	Store  *announcementstore.Store
	Notify *notify.Recorder
	Log    *zap.Logger

	// Now is the clock used for the live check.
	Now func() time.Time
}

func NewHandler(store *announcementstore.Store, rec *notify.Recorder, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Notify: rec, Log: logger, Now: time.Now}
}

// ListLive handles GET /api/announcements: active, unexpired announcements,
// or only the featured ones with ?featured=true.
func (h *Handler) ListLive(w http.ResponseWriter, r *http.Request) {
	var (
		items []models.Announcement
		err   error
	)
	if formutil.QueryBool(r, "featured") {
		items, err = h.Store.LiveFeatured(r.Context(), h.Now())
	} else {
		items, err = h.Store.Live(r.Context(), h.Now())
	}
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}
	jsonresp.OK(w, jsonresp.M{"announcements": models.Redacted(items)})
}

// GetLive handles GET /api/announcements/{id}. Inactive and expired
// announcements are reported as missing.
func (h *Handler) GetLive(w http.ResponseWriter, r *http.Request) {
	a, err := h.Store.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}
	if !a.Live(h.Now()) {
		jsonresp.Error(w, r, h.Log, errNotLive)
		return
	}
	a.Redact()
	jsonresp.OK(w, jsonresp.M{"announcement": a})
}

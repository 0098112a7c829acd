// internal/app/features/notifications/handler.go
package notifications

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ihsb/ihsbsite/internal/app/system/formutil"
	"github.com/ihsb/ihsbsite/internal/app/system/jsonresp"
	"github.com/ihsb/ihsbsite/internal/app/system/notify"
	"github.com/ihsb/ihsbsite/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves the dashboard activity feed.
type Handler struct {
	Notify *notify.Recorder
	Log    *zap.Logger
}

func NewHandler(rec *notify.Recorder, logger *zap.Logger) *Handler {
	return &Handler{Notify: rec, Log: logger}
}

// List handles GET /api/admin/notifications[?limit=].
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := formutil.QueryInt(r, "limit", notify.DefaultLimit)
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}
	items, err := h.Notify.Recent(r.Context(), limit)
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}
	if items == nil {
		items = []models.Notification{}
	}
	jsonresp.OK(w, jsonresp.M{"notifications": items})
}

// AdminRoutes is mounted at /api/admin/notifications. The feed is read-only.
func AdminRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	return r
}

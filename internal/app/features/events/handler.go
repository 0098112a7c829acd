// internal/app/features/events/handler.go
package events

import (
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"github.com/ihsb/ihsbsite/internal/app/features/shared/crudapi"
	eventstore "github.com/ihsb/ihsbsite/internal/app/store/events"
	"github.com/ihsb/ihsbsite/internal/app/system/formutil"
	"github.com/ihsb/ihsbsite/internal/app/system/jsonresp"
	"github.com/ihsb/ihsbsite/internal/app/system/normalize"
	"github.com/ihsb/ihsbsite/internal/app/system/notify"
	"github.com/ihsb/ihsbsite/internal/domain/models"
	"go.uber.org/zap"
)

var collection = crudapi.Config[models.Event]{
	Kind:     "event",
	Singular: "event",
	Plural:   "events",
	HrefBase: "/admin/events",
	Title:    func(e models.Event) string { return e.Title },
}

// Handler serves events.
type Handler struct {
	Store  *eventstore.Store
	Notify *notify.Recorder
	Log    *zap.Logger

	// Now is the clock used for ?upcoming=.
	Now func() time.Time
}

func NewHandler(store *eventstore.Store, rec *notify.Recorder, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Notify: rec, Log: logger, Now: time.Now}
}

func category(r *http.Request) string {
	return strings.ToLower(normalize.QueryParam(query.Get(r, "category")))
}

// ListPublic handles GET /api/events. Only featured events are public;
// ?category= narrows the list.
func (h *Handler) ListPublic(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.Featured(r.Context(), category(r))
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}
	jsonresp.OK(w, jsonresp.M{"events": models.Redacted(items)})
}

// GetPublic handles GET /api/events/{id}.
func (h *Handler) GetPublic(w http.ResponseWriter, r *http.Request) {
	e, err := h.Store.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}
	e.Redact()
	jsonresp.OK(w, jsonresp.M{"event": e})
}

// adminList selects events for GET /api/admin/events. ?upcoming=true lists
// events from today on, soonest first, capped by ?limit=; otherwise
// ?category= narrows the full list.
func (h *Handler) adminList(r *http.Request) ([]models.Event, error) {
	if formutil.QueryBool(r, "upcoming") {
		limit, err := formutil.QueryInt(r, "limit", 0)
		if err != nil {
			return nil, err
		}
		return h.Store.Upcoming(r.Context(), h.Now(), limit)
	}
	if c := category(r); c != "" {
		return h.Store.ByCategory(r.Context(), c)
	}
	return h.Store.GetAll(r.Context())
}

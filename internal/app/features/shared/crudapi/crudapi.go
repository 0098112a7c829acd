// Package crudapi serves the admin create/read/update/delete endpoints that
// every content collection shares, and records a notification for each
// successful mutation.
package crudapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ihsb/ihsbsite/internal/app/store/crud"
	"github.com/ihsb/ihsbsite/internal/app/system/authz"
	"github.com/ihsb/ihsbsite/internal/app/system/formutil"
	"github.com/ihsb/ihsbsite/internal/app/system/jsonresp"
	"github.com/ihsb/ihsbsite/internal/app/system/notify"
	"github.com/ihsb/ihsbsite/internal/domain/models"
	"go.uber.org/zap"
)

// Service is the repository surface the handler needs.
// *crud.Repository[T] satisfies it; entity stores may override methods.
type Service[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, data T, creatorEmail string) (T, error)
	Update(ctx context.Context, id string, patch crud.Patch, updaterEmail string) (T, error)
	Delete(ctx context.Context, id string) error
}

// Config names a collection for envelopes and notifications.
type Config[T any] struct {
	Kind     string // notification type, e.g. "event"
	Singular string // envelope key for one record
	Plural   string // envelope key for a listing
	HrefBase string // admin UI path; item links are HrefBase + "/" + id
	Title    func(T) string
}

// Handler serves one collection.
type Handler[T any] struct {
	Svc    Service[T]
	Cfg    Config[T]
	Notify *notify.Recorder
	Log    *zap.Logger

	// Query, when set, replaces GetAll for List so a collection can filter
	// on query-string parameters.
	Query func(r *http.Request) ([]T, error)

	// AfterUpdate, when set, runs after a successful update with the
	// previous and new record.
	AfterUpdate func(r *http.Request, before, after T)
}

func New[T any](svc Service[T], cfg Config[T], rec *notify.Recorder, log *zap.Logger) *Handler[T] {
	return &Handler[T]{Svc: svc, Cfg: cfg, Notify: rec, Log: log}
}

// Routes mounts GET/POST on "/" and GET/PUT/DELETE on "/{id}". The caller
// applies the access guard.
func (h *Handler[T]) Routes() chi.Router {
	r := chi.NewRouter()
	h.Mount(r)
	return r
}

// Mount registers the routes on an existing router, so callers can add
// collection-specific routes alongside them.
func (h *Handler[T]) Mount(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// List handles GET / with every record in the collection's default order,
// or the records Query selects.
func (h *Handler[T]) List(w http.ResponseWriter, r *http.Request) {
	var (
		items []T
		err   error
	)
	if h.Query != nil {
		items, err = h.Query(r)
	} else {
		items, err = h.Svc.GetAll(r.Context())
	}
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	jsonresp.OK(w, jsonresp.M{h.Cfg.Plural: items})
}

// Get handles GET /{id}.
func (h *Handler[T]) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.Svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}
	jsonresp.OK(w, jsonresp.M{h.Cfg.Singular: item})
}

// Create handles POST /. The created record is returned flat.
func (h *Handler[T]) Create(w http.ResponseWriter, r *http.Request) {
	var in T
	if err := formutil.DecodeJSON(w, r, &in); err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}

	actor := authz.ActorFrom(r)
	created, err := h.Svc.Create(r.Context(), in, actor.Email)
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}

	h.record(r, models.ActionCreated, created)
	jsonresp.OK(w, created)
}

// Update handles PUT /{id}. The body is a partial record: fields present
// replace stored values, null clears them.
func (h *Handler[T]) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	before, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}

	var patch crud.Patch
	if err := formutil.DecodeJSON(w, r, &patch); err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}

	actor := authz.ActorFrom(r)
	updated, err := h.Svc.Update(r.Context(), id, patch, actor.Email)
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}

	h.record(r, models.ActionUpdated, updated)
	if h.AfterUpdate != nil {
		h.AfterUpdate(r, before, updated)
	}
	jsonresp.OK(w, jsonresp.M{h.Cfg.Singular: updated})
}

// Delete handles DELETE /{id}.
func (h *Handler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	cur, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}

	h.record(r, models.ActionDeleted, cur)
	jsonresp.OK(w, jsonresp.M{"success": true, "id": id})
}

func (h *Handler[T]) record(r *http.Request, action string, item T) {
	id := idOf(&item)
	Record(r, h.Notify, h.Cfg.Kind, action, h.title(item), id, h.Cfg.HrefBase)
}

func (h *Handler[T]) title(item T) string {
	if h.Cfg.Title == nil {
		return ""
	}
	return h.Cfg.Title(item)
}

// Record writes one notification for a mutation performed by the request's
// principal. Handlers outside this package use it for custom mutations.
func Record(r *http.Request, rec *notify.Recorder, kind, action, title, id, hrefBase string) {
	actor := authz.ActorFrom(r)
	href := hrefBase
	if id != "" && action != models.ActionDeleted {
		href = hrefBase + "/" + id
	}
	rec.Record(r.Context(), notify.Entry{
		Type:        kind,
		Action:      action,
		Title:       title,
		Description: describe(kind, action, title),
		ItemID:      id,
		ItemHref:    href,
		ActorID:     actor.SubjectID,
		ActorEmail:  actor.Email,
		ActorName:   actor.Name,
	})
}

func describe(kind, action, title string) string {
	if title == "" {
		return kind + " " + action
	}
	b, _ := json.Marshal(title)
	return kind + " " + string(b) + " " + action
}

func idOf[T any](v *T) string {
	if m, ok := any(v).(interface{ GetMeta() *models.Meta }); ok {
		return m.GetMeta().ID
	}
	return ""
}

// internal/app/features/admins/handler.go
package admins

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/ihsb/ihsbsite/internal/app/features/shared/crudapi"
	adminstore "github.com/ihsb/ihsbsite/internal/app/store/admins"
	"github.com/ihsb/ihsbsite/internal/app/store/crud"
	"github.com/ihsb/ihsbsite/internal/app/system/apperr"
	"github.com/ihsb/ihsbsite/internal/app/system/authz"
	"github.com/ihsb/ihsbsite/internal/app/system/formutil"
	"github.com/ihsb/ihsbsite/internal/app/system/jsonresp"
	"github.com/ihsb/ihsbsite/internal/app/system/normalize"
	"github.com/ihsb/ihsbsite/internal/app/system/notify"
	"github.com/ihsb/ihsbsite/internal/domain/models"
	"go.uber.org/zap"
)

const (
	kind     = "admin"
	hrefBase = "/admin/admins"
)

var (
	errSelfDelete = apperr.Invalid("you cannot remove your own account")
	errSelfDemote = apperr.Invalid("you cannot change your own role or deactivate yourself")
)

// patchable lists the fields PATCH may set.
var patchable = map[string]bool{"role": true, "active": true, "name": true}

// Handler manages admin accounts. Listing is open to every admin; changes
// are superadmin only and guarded by the router.
type Handler struct {
	Store  *adminstore.Store
	Notify *notify.Recorder
	Log    *zap.Logger
}

func NewHandler(store *adminstore.Store, rec *notify.Recorder, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Notify: rec, Log: logger}
}

// List handles GET /api/admin/admins. canManage tells the admin UI whether
// the caller may change accounts.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.List(r.Context())
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}
	if items == nil {
		items = []models.AdminAccount{}
	}
	jsonresp.OK(w, jsonresp.M{"admins": items, "canManage": authz.IsSuperAdmin(r)})
}

// Create handles POST /api/admin/admins.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.AdminAccount
	if err := formutil.DecodeJSON(w, r, &in); err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}

	actor := authz.ActorFrom(r)
	a, err := h.Store.Create(r.Context(), in, actor.Email)
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}

	h.Log.Info("admin account created",
		zap.String("email", a.Email),
		zap.String("role", a.Role),
		zap.String("by", actor.Email))
	crudapi.Record(r, h.Notify, kind, models.ActionCreated, a.Email, a.Email, hrefBase)
	jsonresp.OK(w, a)
}

// Update handles PATCH /api/admin/admins/{email} with any of role, active
// and name.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	email := normalize.Email(chi.URLParam(r, "email"))
	if _, err := h.Store.Get(r.Context(), email); err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}

	var patch crud.Patch
	if err := formutil.DecodeJSON(w, r, &patch); err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}
	if err := checkPatch(patch); err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}

	actor := authz.ActorFrom(r)
	if normalize.Email(actor.Email) == email && demotes(patch) {
		jsonresp.Error(w, r, h.Log, errSelfDemote)
		return
	}

	a, err := h.Store.Update(r.Context(), email, patch, actor.Email)
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}

	h.Log.Info("admin account updated",
		zap.String("email", a.Email),
		zap.String("role", a.Role),
		zap.Bool("active", a.IsActive()),
		zap.String("by", actor.Email))
	crudapi.Record(r, h.Notify, kind, models.ActionUpdated, a.Email, a.Email, hrefBase)
	jsonresp.OK(w, jsonresp.M{"admin": a})
}

// Delete handles DELETE /api/admin/admins/{email}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	email := normalize.Email(chi.URLParam(r, "email"))
	actor := authz.ActorFrom(r)
	if normalize.Email(actor.Email) == email {
		jsonresp.Error(w, r, h.Log, errSelfDelete)
		return
	}
	if err := h.Store.Delete(r.Context(), email); err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}

	h.Log.Info("admin account removed", zap.String("email", email), zap.String("by", actor.Email))
	crudapi.Record(r, h.Notify, kind, models.ActionDeleted, email, email, hrefBase)
	jsonresp.OK(w, jsonresp.M{"success": true, "id": email})
}

func checkPatch(p crud.Patch) error {
	if len(p) == 0 {
		return apperr.Invalid("nothing to update; send role, active or name")
	}
	var bad []string
	for k := range p {
		if !patchable[k] {
			bad = append(bad, k)
		}
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return apperr.Invalid("cannot update " + strings.Join(bad, ", "))
	}
	return nil
}

// demotes reports whether p would drop superadmin rights or deactivate the
// account.
func demotes(p crud.Patch) bool {
	if raw, ok := p["role"]; ok {
		var role string
		if json.Unmarshal(raw, &role) != nil || normalize.Role(role) != models.RoleSuperadmin {
			return true
		}
	}
	if raw, ok := p["active"]; ok {
		var active bool
		if json.Unmarshal(raw, &active) != nil || !active {
			return true
		}
	}
	return false
}

// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"

	"github.com/ihsb/ihsbsite/internal/app/store/docstore"
	metricsstore "github.com/ihsb/ihsbsite/internal/app/store/metrics"
	"github.com/ihsb/ihsbsite/internal/app/system/auth"
	"github.com/ihsb/ihsbsite/internal/app/system/identity"
	"github.com/ihsb/ihsbsite/internal/app/system/jsonresp"
	"github.com/ihsb/ihsbsite/internal/app/system/notify"
	"github.com/ihsb/ihsbsite/internal/domain/models"
	"go.uber.org/zap"
)

// recentCount is how many feed entries the dashboard shows.
const recentCount = 10

type Handler struct {
	Store  docstore.Store
	Notify *notify.Recorder
	Log    *zap.Logger
}

func NewHandler(ds docstore.Store, rec *notify.Recorder, logger *zap.Logger) *Handler {
	return &Handler{Store: ds, Notify: rec, Log: logger}
}

type meResponse struct {
	UID          string        `json:"uid"`
	Email        string        `json:"email"`
	Name         string        `json:"name,omitempty"`
	Role         identity.Role `json:"role"`
	IsSuperadmin bool          `json:"isSuperadmin"`
}

// Me handles GET /api/admin/me with the caller's identity and resolved
// role.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentUser(r)
	if !ok {
		jsonresp.Error(w, r, h.Log, identity.ErrInvalidCredential)
		return
	}
	jsonresp.OK(w, jsonresp.M{"user": meResponse{
		UID:          p.SubjectID,
		Email:        p.Email,
		Name:         p.Name,
		Role:         p.Role,
		IsSuperadmin: p.IsSuperadmin(),
	}})
}

// Serve handles GET /api/admin/dashboard: collection totals and the most
// recent activity.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	counts := metricsstore.FetchDashboardCounts(r.Context(), h.Store)

	recent, err := h.Notify.Recent(r.Context(), recentCount)
	if err != nil {
		h.Log.Warn("dashboard: recent notifications unavailable", zap.Error(err))
	}
	if recent == nil {
		recent = []models.Notification{}
	}

	h.Log.Debug("admin dashboard served", zap.String("path", r.URL.Path))
	jsonresp.OK(w, jsonresp.M{"counts": counts, "recent": recent})
}

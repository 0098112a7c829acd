package alumni

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ihsb/ihsbsite/internal/app/features/shared/crudapi"
	"github.com/ihsb/ihsbsite/internal/app/system/authz"
	"github.com/ihsb/ihsbsite/internal/app/system/jsonresp"
	"github.com/ihsb/ihsbsite/internal/domain/models"
)

const yearStatsKind = "alumni_year_stats"

var yearStatsCollection = crudapi.Config[models.AlumniYearStats]{
	Kind:     yearStatsKind,
	Singular: "stats",
	Plural:   "stats",
	HrefBase: "/admin/alumni/year-stats",
	Title:    func(y models.AlumniYearStats) string { return y.Year },
}

// ListYearStats handles GET /api/alumni/year-stats, newest year first.
func (h *Handler) ListYearStats(w http.ResponseWriter, r *http.Request) {
	items, err := h.YearStats.GetAll(r.Context())
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}
	jsonresp.OK(w, jsonresp.M{"stats": models.Redacted(items)})
}

// Recalculate handles POST /api/admin/alumni/year-stats/recalculate. Every
// graduation year present among alumni profiles gets a computed count that
// replaces any manual one.
func (h *Handler) Recalculate(w http.ResponseWriter, r *http.Request) {
	actor := authz.ActorFrom(r)
	stats, err := h.YearStats.RecalculateAll(r.Context(), actor.Email)
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}
	if stats == nil {
		stats = []models.AlumniYearStats{}
	}

	title := fmt.Sprintf("%d graduation years recalculated", len(stats))
	crudapi.Record(r, h.Notify, yearStatsKind, models.ActionUpdated, title, "", yearStatsCollection.HrefBase)
	jsonresp.OK(w, jsonresp.M{"success": true, "stats": stats})
}

// CountForYear handles GET /api/admin/alumni/year-stats/{id}/count, where id
// is the year. Nothing is written.
func (h *Handler) CountForYear(w http.ResponseWriter, r *http.Request) {
	year := chi.URLParam(r, "id")
	n, err := h.YearStats.CalculateYearStats(r.Context(), year)
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}
	jsonresp.OK(w, jsonresp.M{"year": year, "count": n})
}

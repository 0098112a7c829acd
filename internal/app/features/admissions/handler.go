// internal/app/features/admissions/handler.go
package admissions

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"github.com/ihsb/ihsbsite/internal/app/features/shared/crudapi"
	"github.com/ihsb/ihsbsite/internal/app/features/uploads"
	admissionstore "github.com/ihsb/ihsbsite/internal/app/store/admissions"
	"github.com/ihsb/ihsbsite/internal/app/system/apperr"
	"github.com/ihsb/ihsbsite/internal/app/system/authz"
	"github.com/ihsb/ihsbsite/internal/app/system/formutil"
	"github.com/ihsb/ihsbsite/internal/app/system/jsonresp"
	"github.com/ihsb/ihsbsite/internal/app/system/mailer"
	"github.com/ihsb/ihsbsite/internal/app/system/normalize"
	"github.com/ihsb/ihsbsite/internal/app/system/notify"
	"github.com/ihsb/ihsbsite/internal/domain/models"
	"go.uber.org/zap"
)

const hrefBase = "/admin/admissions"

var collection = crudapi.Config[models.Admission]{
	Kind:     "admission",
	Singular: "admission",
	Plural:   "admissions",
	HrefBase: hrefBase,
	Title:    func(a models.Admission) string { return a.StudentName },
}

// Sender delivers email in the background. *mailer.Mailer implements it.
type Sender interface {
	Go(e mailer.Email)
}

// Handler serves the public application form and the admin review screens.
type Handler struct {
	Store   *admissionstore.Store
	Notify  *notify.Recorder
	Mail    Sender
	Uploads *uploads.Handler
	Log     *zap.Logger

	// OfficeEmail receives an alert for each new application; empty skips it.
	OfficeEmail string
	// AdminBaseURL prefixes review links in office alerts.
	AdminBaseURL string
}

func NewHandler(store *admissionstore.Store, rec *notify.Recorder, mail Sender, up *uploads.Handler, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Notify: rec, Mail: mail, Uploads: up, Log: logger}
}

// Submit handles POST /api/admissions. The application is stored as
// pending, the guardian gets a confirmation and the office an alert.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var in models.Admission
	if err := formutil.DecodeJSON(w, r, &in); err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}

	a, err := h.Store.Submit(r.Context(), in)
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}

	h.Log.Info("admission submitted",
		zap.String("admission_id", a.ID),
		zap.String("class", a.ClassApplying))

	crudapi.Record(r, h.Notify, collection.Kind, models.ActionCreated, a.StudentName, a.ID, hrefBase)

	d := h.emailData(a)
	h.send(mailer.BuildAdmissionConfirmation(d))
	if h.OfficeEmail != "" {
		h.send(mailer.BuildAdmissionAlert(h.OfficeEmail, d))
	}

	jsonresp.OK(w, jsonresp.M{"success": true, "id": a.ID, "status": a.Status})
}

var errStatus = apperr.Invalid("status must be one of pending, approved, rejected")

func parseStatus(s string) (string, error) {
	s = strings.ToLower(normalize.QueryParam(s))
	switch s {
	case models.AdmissionPending, models.AdmissionApproved, models.AdmissionRejected:
		return s, nil
	}
	return "", errStatus
}

// adminList selects applications for GET /api/admin/admissions; ?status=
// narrows the list to one status.
func (h *Handler) adminList(r *http.Request) ([]models.Admission, error) {
	raw := query.Get(r, "status")
	if normalize.QueryParam(raw) == "" {
		return h.Store.GetAll(r.Context())
	}
	status, err := parseStatus(raw)
	if err != nil {
		return nil, err
	}
	return h.Store.ByStatus(r.Context(), status)
}

// UpdateStatus handles PATCH /api/admin/admissions/{id}/status with a body of
// {"status": ...}.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	before, err := h.Store.GetByID(r.Context(), id)
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}

	var in struct {
		Status string `json:"status"`
	}
	if err := formutil.DecodeJSON(w, r, &in); err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}
	status, err := parseStatus(in.Status)
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}

	actor := authz.ActorFrom(r)
	after, err := h.Store.SetStatus(r.Context(), id, status, actor.Email)
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}

	h.Log.Info("admission status changed",
		zap.String("admission_id", id),
		zap.String("from", before.Status),
		zap.String("to", after.Status),
		zap.String("by", actor.Email))
	crudapi.Record(r, h.Notify, collection.Kind, models.ActionUpdated, after.StudentName, after.ID, hrefBase)
	h.statusChanged(r, before, after)
	jsonresp.OK(w, jsonresp.M{"admission": after})
}

// statusChanged emails the guardian when an admin moves an application out
// of pending or between decisions.
func (h *Handler) statusChanged(_ *http.Request, before, after models.Admission) {
	if before.Status == after.Status || after.Status == models.AdmissionPending {
		return
	}
	h.send(mailer.BuildAdmissionStatus(h.emailData(after)))
}

func (h *Handler) send(e mailer.Email) {
	if h.Mail == nil || e.To == "" {
		return
	}
	h.Mail.Go(e)
}

func (h *Handler) emailData(a models.Admission) mailer.AdmissionData {
	d := mailer.AdmissionData{
		ID:            a.ID,
		StudentName:   a.StudentName,
		ClassApplying: a.ClassApplying,
		GuardianName:  a.GuardianName,
		GuardianEmail: a.GuardianEmail,
		GuardianPhone: a.GuardianPhone,
		Status:        a.Status,
	}
	if h.AdminBaseURL != "" {
		d.AdminURL = strings.TrimRight(h.AdminBaseURL, "/") + hrefBase + "/" + a.ID
	}
	return d
}

// internal/app/features/contact/handler.go
package contact

import (
	"net/http"
	"strings"

	"github.com/ihsb/ihsbsite/internal/app/store/crud"
	"github.com/ihsb/ihsbsite/internal/app/system/apperr"
	"github.com/ihsb/ihsbsite/internal/app/system/formutil"
	"github.com/ihsb/ihsbsite/internal/app/system/jsonresp"
	"github.com/ihsb/ihsbsite/internal/app/system/mailer"
	"github.com/ihsb/ihsbsite/internal/app/system/normalize"
	"go.uber.org/zap"
)

var errNotConfigured = apperr.New(apperr.Upstream, "contact form is not available")

// Message is a contact form submission.
type Message struct {
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"max=30"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Sender delivers email in the background.
type Sender interface {
	Go(e mailer.Email)
}

type Handler struct {
	Mail Sender
	// To is the office inbox contact messages are forwarded to.
	To  string
	Log *zap.Logger
}

func NewHandler(mail Sender, to string, logger *zap.Logger) *Handler {
	return &Handler{Mail: mail, To: to, Log: logger}
}

// Submit handles POST /api/contact.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if h.Mail == nil || h.To == "" {
		jsonresp.Error(w, r, h.Log, errNotConfigured)
		return
	}

	var m Message
	if err := formutil.DecodeJSON(w, r, &m); err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}
	m.Name = normalize.Name(m.Name)
	m.Email = normalize.Email(m.Email)
	m.Phone = strings.TrimSpace(m.Phone)
	m.Subject = strings.TrimSpace(m.Subject)
	m.Message = strings.TrimSpace(m.Message)
	if err := crud.Validate(&m); err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}

	h.Mail.Go(mailer.BuildContactMessage(h.To, mailer.ContactData{
		Name:    m.Name,
		Email:   m.Email,
		Phone:   m.Phone,
		Subject: m.Subject,
		Message: m.Message,
	}))
	h.Log.Info("contact message forwarded", zap.String("from", m.Email))
	jsonresp.OK(w, jsonresp.M{"success": true})
}

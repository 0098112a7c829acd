// internal/app/features/assist/handler.go
package assist

import (
	"net/http"

	"github.com/ihsb/ihsbsite/internal/app/system/authz"
	"github.com/ihsb/ihsbsite/internal/app/system/formutil"
	"github.com/ihsb/ihsbsite/internal/app/system/jsonresp"
	"github.com/ihsb/ihsbsite/internal/app/system/textassist"
	"go.uber.org/zap"
)

type improveRequest struct {
	Text    string `json:"text"`
	Purpose string `json:"purpose"`
}

// Handler serves the writing assistant used by the admin editors.
type Handler struct {
	Assistant *textassist.Assistant
	Log       *zap.Logger
}

func NewHandler(a *textassist.Assistant, logger *zap.Logger) *Handler {
	return &Handler{Assistant: a, Log: logger}
}

// Improve handles POST /api/admin/assist/improve.
func (h *Handler) Improve(w http.ResponseWriter, r *http.Request) {
	var in improveRequest
	if err := formutil.DecodeJSON(w, r, &in); err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}

	out, err := h.Assistant.Improve(r.Context(), in.Text, in.Purpose)
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}

	h.Log.Debug("text improved",
		zap.String("actor", authz.ActorFrom(r).Email),
		zap.String("purpose", in.Purpose),
		zap.Int("in_len", len(in.Text)),
		zap.Int("out_len", len(out)))
	jsonresp.OK(w, jsonresp.M{"improved": out})
}

// ActorKey buckets rate limits by the signed-in admin.
func ActorKey(r *http.Request) string {
	return authz.ActorFrom(r).Email
}

package contact_test

import (
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/ihsb/ihsbsite/internal/app/features/contact"
	"github.com/ihsb/ihsbsite/internal/app/system/mailer"
	"github.com/ihsb/ihsbsite/internal/app/system/ratelimit"
	"github.com/ihsb/ihsbsite/internal/testutil"
	"go.uber.org/zap"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []mailer.Email
}

func (f *fakeSender) Go(e mailer.Email) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, e)
}

func TestSubmit(t *testing.T) {
	tests := []struct {
		name string
		body any
		want int
		sent int
	}{
		{"valid", map[string]any{"name": "Guardian", "email": "G@Example.com", "message": "When does term start?"}, http.StatusOK, 1},
		{"missing message", map[string]any{"name": "Guardian", "email": "g@example.com"}, http.StatusBadRequest, 0},
		{"bad email", map[string]any{"name": "Guardian", "email": "nope", "message": "hi"}, http.StatusBadRequest, 0},
		{"too long", map[string]any{"name": "Guardian", "email": "g@example.com", "message": strings.Repeat("a", 5001)}, http.StatusBadRequest, 0},
		{"malformed", "{", http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mail := &fakeSender{}
			h := contact.NewHandler(mail, "office@ihsb.test", zap.NewNop())

			rr := testutil.NewRecorder()
			h.Submit(rr, testutil.NewJSONRequest(t, http.MethodPost, "/", tt.body))
			rr.AssertStatus(t, tt.want)
			if len(mail.sent) != tt.sent {
				t.Fatalf("sent %d emails, want %d", len(mail.sent), tt.sent)
			}
			if tt.sent == 1 {
				e := mail.sent[0]
				if e.To != "office@ihsb.test" || e.ReplyTo != "g@example.com" {
					t.Errorf("email = %+v", e)
				}
			}
		})
	}
}

func TestSubmit_NotConfigured(t *testing.T) {
	h := contact.NewHandler(nil, "", zap.NewNop())
	rr := testutil.NewRecorder()
	h.Submit(rr, testutil.NewJSONRequest(t, http.MethodPost, "/", map[string]any{"name": "x"}))
	rr.AssertStatus(t, http.StatusInternalServerError)
}

func TestRoutes_RateLimited(t *testing.T) {
	h := contact.NewHandler(&fakeSender{}, "office@ihsb.test", zap.NewNop())
	limiter := ratelimit.PerMinute(1)
	router := contact.Routes(h, limiter.Middleware(ratelimit.ClientIP(nil), zap.NewNop()))

	body := map[string]any{"name": "Guardian", "email": "g@example.com", "message": "hello"}
	rr := testutil.NewRecorder()
	router.ServeHTTP(rr, testutil.NewJSONRequest(t, http.MethodPost, "/", body))
	rr.AssertStatus(t, http.StatusOK)

	rr = testutil.NewRecorder()
	router.ServeHTTP(rr, testutil.NewJSONRequest(t, http.MethodPost, "/", body))
	rr.AssertStatus(t, http.StatusTooManyRequests)
}

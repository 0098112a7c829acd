package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ihsb/ihsbsite/internal/app/system/auth"
	"github.com/ihsb/ihsbsite/internal/app/system/identity"
)

// TestHMACSecret signs tokens accepted by verifiers built with it.
const TestHMACSecret = "ihsb-test-secret-0123456789abcdef"

// AdminUser returns an admin principal.
func AdminUser() auth.Principal {
	return auth.Principal{
		Identity: identity.Identity{SubjectID: "uid-admin", Email: "admin@ihsb.test", Name: "Test Admin"},
		Role:     identity.RoleAdmin,
	}
}

// SuperadminUser returns a superadmin principal.
func SuperadminUser() auth.Principal {
	return auth.Principal{
		Identity: identity.Identity{SubjectID: "uid-super", Email: "super@ihsb.test", Name: "Test Superadmin"},
		Role:     identity.RoleSuperadmin,
	}
}

// WithUser adds p to the request context, bypassing the guard.
func WithUser(r *http.Request, p auth.Principal) *http.Request {
	return auth.WithPrincipal(r, p)
}

// NewJSONRequest builds a request whose body is v encoded as JSON. A string
// v is sent verbatim.
func NewJSONRequest(t *testing.T, method, target string, v any) *http.Request {
	t.Helper()
	var body io.Reader
	switch x := v.(type) {
	case nil:
	case string:
		body = strings.NewReader(x)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// SignToken returns an HS256 token for sub/email signed with
// TestHMACSecret, valid for an hour.
func SignToken(t *testing.T, sub, email string) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   sub,
		"email": email,
		"name":  "Token User",
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(TestHMACSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t testing.TB, expected int) {
	t.Helper()
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d (body %s)", r.Code, expected, r.Body.String())
	}
}

// Decode unmarshals the response body into v.
func (r *ResponseRecorder) Decode(t testing.TB, v any) {
	t.Helper()
	if err := json.Unmarshal(r.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", r.Body.String(), err)
	}
}

// ErrorMessage returns the "error" field of an error envelope.
func (r *ResponseRecorder) ErrorMessage(t testing.TB) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	r.Decode(t, &body)
	return body.Error
}

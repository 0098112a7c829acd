package formutil_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ihsb/ihsbsite/internal/app/system/apperr"
	"github.com/ihsb/ihsbsite/internal/app/system/formutil"
	"github.com/ihsb/ihsbsite/internal/app/system/limits"
)

type payload struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		kind apperr.Kind // "" means success
	}{
		{"ok", `{"title":"Fair","count":2}`, ""},
		{"empty", ``, apperr.Validation},
		{"syntax", `{"title":`, apperr.Validation},
		{"wrong type", `{"count":"two"}`, apperr.Validation},
		{"array", `[1,2]`, apperr.Validation},
		{"trailing", `{"title":"a"}{"title":"b"}`, apperr.Validation},
		{"too large", `{"title":"` + strings.Repeat("x", limits.MaxJSONBody) + `"}`, apperr.TooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := formutil.DecodeJSON(httptest.NewRecorder(), req, &p)
			if tt.kind == "" {
				if err != nil {
					t.Fatalf("DecodeJSON: %v", err)
				}
				if p.Title != "Fair" || p.Count != 2 {
					t.Errorf("decoded %+v", p)
				}
				return
			}
			if !apperr.Is(err, tt.kind) {
				t.Errorf("err = %v, want %s", err, tt.kind)
			}
		})
	}
}

func TestQueryHelpers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=5&bad=x&featured=true", nil)

	if n, err := formutil.QueryInt(req, "limit", 20); err != nil || n != 5 {
		t.Errorf("limit = %d, %v", n, err)
	}
	if n, err := formutil.QueryInt(req, "missing", 20); err != nil || n != 20 {
		t.Errorf("missing = %d, %v", n, err)
	}
	if _, err := formutil.QueryInt(req, "bad", 20); !apperr.Is(err, apperr.Validation) {
		t.Errorf("bad: err = %v", err)
	}
	if !formutil.QueryBool(req, "featured") || formutil.QueryBool(req, "missing") {
		t.Error("QueryBool mismatch")
	}
}

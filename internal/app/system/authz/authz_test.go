package authz_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ihsb/ihsbsite/internal/app/system/auth"
	"github.com/ihsb/ihsbsite/internal/app/system/authz"
	"github.com/ihsb/ihsbsite/internal/app/system/identity"
)

func withRole(role identity.Role) *http.Request {
	req := httptest.NewRequest("GET", "/test", nil)
	return auth.WithPrincipal(req, auth.Principal{
		Identity: identity.Identity{SubjectID: "uid-1", Email: "staff@ihsb.edu", Name: "Staff"},
		Role:     role,
	})
}

func TestRoleHelpers(t *testing.T) {
	tests := []struct {
		name       string
		req        *http.Request
		superadmin bool
	}{
		{"anonymous", httptest.NewRequest("GET", "/test", nil), false},
		{"admin", withRole(identity.RoleAdmin), false},
		{"superadmin", withRole(identity.RoleSuperadmin), true},
		{"none", withRole(identity.RoleNone), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := authz.IsSuperAdmin(tt.req); got != tt.superadmin {
				t.Errorf("IsSuperAdmin = %v, want %v", got, tt.superadmin)
			}
		})
	}
}

func TestHasAnyRole(t *testing.T) {
	req := withRole(identity.RoleAdmin)
	if !authz.HasAnyRole(req, identity.RoleSuperadmin, identity.RoleAdmin) {
		t.Error("expected admin to match")
	}
	if authz.HasAnyRole(req, identity.RoleSuperadmin) {
		t.Error("admin should not match superadmin")
	}
	if authz.HasAnyRole(httptest.NewRequest("GET", "/", nil), identity.RoleAdmin) {
		t.Error("anonymous request has no role")
	}
}

func TestActorFrom(t *testing.T) {
	a := authz.ActorFrom(withRole(identity.RoleAdmin))
	if a.SubjectID != "uid-1" || a.Email != "staff@ihsb.edu" || a.Name != "Staff" {
		t.Errorf("actor = %+v", a)
	}
	if got := authz.ActorFrom(httptest.NewRequest("GET", "/", nil)); got != (authz.Actor{}) {
		t.Errorf("anonymous actor = %+v", got)
	}
}

package identity_test

import (
	"context"
	"errors"
	"testing"

	adminstore "github.com/ihsb/ihsbsite/internal/app/store/admins"
	"github.com/ihsb/ihsbsite/internal/app/store/docstore"
	"github.com/ihsb/ihsbsite/internal/app/system/apperr"
	"github.com/ihsb/ihsbsite/internal/app/system/identity"
	"github.com/ihsb/ihsbsite/internal/domain/models"
)

type failingLookup struct{}

func (failingLookup) Get(context.Context, string) (models.AdminAccount, error) {
	return models.AdminAccount{}, errors.New("connection refused")
}

func TestResolveRole(t *testing.T) {
	ctx := context.Background()
	admins := adminstore.New(docstore.NewMemory())

	seed := []models.AdminAccount{
		{Email: "staff@ihsb.edu", Role: models.RoleAdmin},
		{Email: "deputy@ihsb.edu", Role: models.RoleSuperadmin},
		{Email: "former@ihsb.edu", Role: models.RoleAdmin, Active: models.BoolPtr(false)},
	}
	for _, a := range seed {
		if _, err := admins.Create(ctx, a, "root@ihsb.edu"); err != nil {
			t.Fatalf("seed %s: %v", a.Email, err)
		}
	}

	r := identity.NewResolver([]string{" Principal@IHSB.edu "}, admins)

	tests := []struct {
		email string
		want  identity.Role
	}{
		{"principal@ihsb.edu", identity.RoleSuperadmin},
		{"PRINCIPAL@ihsb.edu", identity.RoleSuperadmin},
		{"staff@ihsb.edu", identity.RoleAdmin},
		{"Staff@IHSB.edu", identity.RoleAdmin},
		{"deputy@ihsb.edu", identity.RoleSuperadmin},
		{"former@ihsb.edu", identity.RoleNone},
		{"stranger@example.com", identity.RoleNone},
		{"", identity.RoleNone},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			got, err := r.ResolveRole(ctx, tt.email)
			if err != nil {
				t.Fatalf("ResolveRole: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveRole(%q) = %q, want %q", tt.email, got, tt.want)
			}
		})
	}
}

func TestResolveRole_AllowListNeedsNoStore(t *testing.T) {
	r := identity.NewResolver([]string{"principal@ihsb.edu"}, failingLookup{})
	got, err := r.ResolveRole(context.Background(), "principal@ihsb.edu")
	if err != nil || got != identity.RoleSuperadmin {
		t.Errorf("got %q, %v; want superadmin", got, err)
	}
	if got, _ := r.ResolveRole(context.Background(), " Principal@IHSB.edu"); got != identity.RoleSuperadmin {
		t.Errorf("mixed-case allow-listed email resolved to %q", got)
	}
}

func TestResolveRole_StoreFailureIsUpstream(t *testing.T) {
	r := identity.NewResolver(nil, failingLookup{})
	_, err := r.ResolveRole(context.Background(), "staff@ihsb.edu")
	if !apperr.Is(err, apperr.Upstream) {
		t.Errorf("err = %v, want Upstream", err)
	}
}

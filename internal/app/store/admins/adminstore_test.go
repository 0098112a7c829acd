package adminstore_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	adminstore "github.com/ihsb/ihsbsite/internal/app/store/admins"
	"github.com/ihsb/ihsbsite/internal/app/store/crud"
	"github.com/ihsb/ihsbsite/internal/app/store/docstore"
	"github.com/ihsb/ihsbsite/internal/domain/models"
)

func TestCreateGet_NormalizesEmail(t *testing.T) {
	ctx := context.Background()
	s := adminstore.New(docstore.NewMemory())

	a, err := s.Create(ctx, models.AdminAccount{Email: "  Staff@IHSB.edu "}, "root@ihsb.edu")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.Email != "staff@ihsb.edu" || a.ID != "staff@ihsb.edu" {
		t.Errorf("email/id = %q/%q", a.Email, a.ID)
	}
	if a.Role != models.RoleAdmin || !a.IsActive() {
		t.Errorf("defaults not applied: %+v", a)
	}

	got, err := s.Get(ctx, "STAFF@ihsb.edu")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Email != "staff@ihsb.edu" {
		t.Errorf("Get = %+v", got)
	}

	if _, err := s.Create(ctx, models.AdminAccount{Email: "staff@ihsb.edu"}, "root@ihsb.edu"); !errors.Is(err, adminstore.ErrExists) {
		t.Errorf("duplicate create: err = %v", err)
	}
}

func TestUpdate_RoleAndActive(t *testing.T) {
	ctx := context.Background()
	s := adminstore.New(docstore.NewMemory())
	if _, err := s.Create(ctx, models.AdminAccount{Email: "a@ihsb.edu"}, "root@ihsb.edu"); err != nil {
		t.Fatal(err)
	}

	a, err := s.Update(ctx, "A@ihsb.edu", crud.Patch{"role": json.RawMessage(`" SuperAdmin "`)}, "root@ihsb.edu")
	if err != nil {
		t.Fatalf("Update role: %v", err)
	}
	if a.Role != models.RoleSuperadmin || a.UpdatedBy != "root@ihsb.edu" {
		t.Errorf("account = %+v", a)
	}

	a, err = s.Update(ctx, "a@ihsb.edu", crud.Patch{"active": json.RawMessage(`false`)}, "root@ihsb.edu")
	if err != nil {
		t.Fatalf("Update active: %v", err)
	}
	if a.IsActive() {
		t.Error("account should be inactive")
	}

	if _, err := s.Update(ctx, "a@ihsb.edu", crud.Patch{"role": json.RawMessage(`"owner"`)}, "root@ihsb.edu"); err == nil {
		t.Error("invalid role accepted")
	}
}

func TestMissingAccount(t *testing.T) {
	ctx := context.Background()
	s := adminstore.New(docstore.NewMemory())
	if _, err := s.Get(ctx, "ghost@ihsb.edu"); !errors.Is(err, adminstore.ErrNotFound) {
		t.Errorf("Get: err = %v", err)
	}
	if _, err := s.Update(ctx, "ghost@ihsb.edu", crud.Patch{"active": json.RawMessage(`true`)}, "root@ihsb.edu"); !errors.Is(err, adminstore.ErrNotFound) {
		t.Errorf("Update: err = %v", err)
	}
	if err := s.Delete(ctx, "ghost@ihsb.edu"); !errors.Is(err, adminstore.ErrNotFound) {
		t.Errorf("Delete: err = %v", err)
	}
}

func TestCreate_RejectsMalformedEmail(t *testing.T) {
	s := adminstore.New(docstore.NewMemory())
	for _, email := range []string{"", "staff", "Head <head@ihsb.edu>", "staff..x@ihsb.edu"} {
		if _, err := s.Create(context.Background(), models.AdminAccount{Email: email}, "root@ihsb.edu"); !errors.Is(err, adminstore.ErrInvalidEmail) {
			t.Errorf("Create(%q): err = %v", email, err)
		}
	}
}

package admissionstore_test

import (
	"context"
	"testing"

	admissionstore "github.com/ihsb/ihsbsite/internal/app/store/admissions"
	"github.com/ihsb/ihsbsite/internal/app/store/docstore"
	"github.com/ihsb/ihsbsite/internal/app/system/apperr"
	"github.com/ihsb/ihsbsite/internal/domain/models"
)

func application() models.Admission {
	return models.Admission{
		StudentName:   "Samira Khan",
		DateOfBirth:   "2015-04-12",
		ClassApplying: "Grade 4",
		GuardianName:  "Imran Khan",
		GuardianPhone: "+8801700000000",
		GuardianEmail: "Imran.Khan@Example.com",
		Address:       "House 12, Road 5, Dhanmondi",
	}
}

func TestCreate_ForcesPending(t *testing.T) {
	s := admissionstore.New(docstore.NewMemory())
	in := application()
	in.Status = models.AdmissionApproved

	got, err := s.Create(context.Background(), in, "a@ihsb.edu")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.Status != models.AdmissionPending {
		t.Errorf("status = %q, want pending", got.Status)
	}
	if got.GuardianEmail != "imran.khan@example.com" {
		t.Errorf("guardianEmail = %q, want normalized", got.GuardianEmail)
	}
}

func TestSubmit_ClearsNotes(t *testing.T) {
	s := admissionstore.New(docstore.NewMemory())
	in := application()
	in.Notes = "fast-track"
	in.Status = models.AdmissionApproved

	got, err := s.Submit(context.Background(), in)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got.Notes != "" || got.Status != models.AdmissionPending {
		t.Errorf("public submission kept admin fields: %+v", got)
	}
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()
	s := admissionstore.New(docstore.NewMemory())
	a, _ := s.Create(ctx, application(), "")

	got, err := s.SetStatus(ctx, a.ID, models.AdmissionApproved, "office@ihsb.edu")
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if got.Status != models.AdmissionApproved || got.UpdatedBy != "office@ihsb.edu" {
		t.Errorf("unexpected record %+v", got)
	}

	if _, err := s.SetStatus(ctx, a.ID, "waitlisted", "office@ihsb.edu"); !apperr.Is(err, apperr.Validation) {
		t.Errorf("bad status: err = %v, want validation error", err)
	}

	approved, _ := s.ByStatus(ctx, models.AdmissionApproved)
	if len(approved) != 1 {
		t.Errorf("ByStatus(approved) = %d records", len(approved))
	}
}

func TestCreate_Validation(t *testing.T) {
	in := application()
	in.GuardianEmail = "not-an-email"
	_, err := admissionstore.New(docstore.NewMemory()).Create(context.Background(), in, "")
	if !apperr.Is(err, apperr.Validation) {
		t.Errorf("err = %v, want validation error", err)
	}
}

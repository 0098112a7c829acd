package crud_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/ihsb/ihsbsite/internal/app/store/crud"
	"github.com/ihsb/ihsbsite/internal/app/store/docstore"
	"github.com/ihsb/ihsbsite/internal/app/system/apperr"
	"github.com/ihsb/ihsbsite/internal/domain/models"
)

func eventRepo(store docstore.Store) *crud.Repository[models.Event] {
	return crud.New(store, crud.Schema[models.Event]{
		Collection: "events",
		Sort:       []docstore.Sort{docstore.Desc("date")},
		Prepare: func(e *models.Event) error {
			if !e.RegistrationRequired {
				e.RegistrationURL = ""
			}
			return nil
		},
	})
}

func announcementRepo(store docstore.Store) *crud.Repository[models.Announcement] {
	return crud.New(store, crud.Schema[models.Announcement]{
		Collection: "announcements",
		TimeFields: []string{"expiresAt"},
		Immutable:  []string{"title"},
		Defaults: func(a *models.Announcement) {
			if a.Priority == "" {
				a.Priority = models.PriorityMedium
			}
			if a.IsActive == nil {
				a.IsActive = models.BoolPtr(true)
			}
		},
	})
}

func patch(t *testing.T, body string) crud.Patch {
	t.Helper()
	var p crud.Patch
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("bad patch %s: %v", body, err)
	}
	return p
}

func TestCreateThenGetByID(t *testing.T) {
	ctx := context.Background()
	repo := eventRepo(docstore.NewMemory())

	in := models.Event{
		Title:    "Fair",
		Date:     "2025-02-20",
		Category: models.EventAcademic,
		Location: "Main hall",
		Featured: true,
	}
	created, err := repo.Create(ctx, in, "admin@ihsb.edu")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" || created.CreatedAt == "" || created.UpdatedAt == "" {
		t.Fatalf("server fields not assigned: %+v", created.Meta)
	}
	if created.CreatedBy != "admin@ihsb.edu" || created.UpdatedBy != "admin@ihsb.edu" {
		t.Errorf("attribution = %q/%q", created.CreatedBy, created.UpdatedBy)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if diff := cmp.Diff(in, got, cmpopts.IgnoreFields(models.Event{}, "Meta")); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(created, got); diff != "" {
		t.Errorf("GetByID differs from Create result (-create +get):\n%s", diff)
	}
}

func TestCreate_IgnoresCallerServerFields(t *testing.T) {
	ctx := context.Background()
	repo := eventRepo(docstore.NewMemory())

	in := models.Event{Title: "Fair", Date: "2025-02-20", Category: models.EventOther}
	in.ID = "forged"
	in.CreatedBy = "someone@else.com"
	in.CreatedAt = "2000-01-01T00:00:00.000Z"

	got, err := repo.Create(ctx, in, "admin@ihsb.edu")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.ID == "forged" || got.CreatedBy != "admin@ihsb.edu" || strings.HasPrefix(got.CreatedAt, "2000") {
		t.Errorf("caller-supplied server fields were kept: %+v", got.Meta)
	}
}

func TestCreate_Validation(t *testing.T) {
	ctx := context.Background()
	repo := eventRepo(docstore.NewMemory())

	tests := []struct {
		name    string
		in      models.Event
		wantMsg string
	}{
		{"missing title", models.Event{Date: "2025-02-20", Category: "academic"}, "title"},
		{"bad date", models.Event{Title: "x", Date: "20/02/2025", Category: "academic"}, "date"},
		{"bad category", models.Event{Title: "x", Date: "2025-02-20", Category: "party"}, "category"},
		{"bad registration url", models.Event{Title: "x", Date: "2025-02-20", Category: "other", RegistrationRequired: true, RegistrationURL: "not a url"}, "registrationUrl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Create(ctx, tt.in, "admin@ihsb.edu")
			if !apperr.Is(err, apperr.Validation) {
				t.Fatalf("err = %v, want validation error", err)
			}
			if !strings.Contains(apperr.Message(err), tt.wantMsg) {
				t.Errorf("message %q should name %q", apperr.Message(err), tt.wantMsg)
			}
		})
	}
}

func TestCreate_Defaults(t *testing.T) {
	ctx := context.Background()
	repo := announcementRepo(docstore.NewMemory())

	got, err := repo.Create(ctx, models.Announcement{Title: "Holiday"}, "admin@ihsb.edu")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.Priority != models.PriorityMedium {
		t.Errorf("priority = %q, want medium", got.Priority)
	}
	if got.IsActive == nil || !*got.IsActive {
		t.Errorf("isActive should default to true")
	}
}

func TestUpdate_Patch(t *testing.T) {
	ctx := context.Background()
	repo := eventRepo(docstore.NewMemory())

	created, err := repo.Create(ctx, models.Event{
		Title:                "Fair",
		Date:                 "2025-02-20",
		Category:             "academic",
		Image:                "https://cdn.example.com/fair.jpg",
		RegistrationRequired: true,
		RegistrationURL:      "https://forms.example.com/fair",
	}, "first@ihsb.edu")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.Update(ctx, created.ID, patch(t, `{
		"title": "Science Fair",
		"image": null,
		"registrationRequired": false,
		"createdBy": "forged@x.com"
	}`), "second@ihsb.edu")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if got.Title != "Science Fair" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Date != "2025-02-20" || got.Category != "academic" {
		t.Errorf("untouched fields changed: %+v", got)
	}
	if got.Image != "" {
		t.Errorf("image should be cleared, got %q", got.Image)
	}
	if got.RegistrationURL != "" {
		t.Errorf("registrationUrl should be dropped with registrationRequired=false, got %q", got.RegistrationURL)
	}
	if got.CreatedBy != "first@ihsb.edu" || got.UpdatedBy != "second@ihsb.edu" {
		t.Errorf("attribution = %q/%q", got.CreatedBy, got.UpdatedBy)
	}
	if got.CreatedAt != created.CreatedAt {
		t.Errorf("createdAt changed")
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo := eventRepo(docstore.NewMemory())
	_, err := repo.Update(context.Background(), "64b7f0c2a1b2c3d4e5f60718", patch(t, `{"title":"x"}`), "a@b.c")
	if !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdate_InvalidPatchLeavesRecord(t *testing.T) {
	ctx := context.Background()
	repo := eventRepo(docstore.NewMemory())
	created, _ := repo.Create(ctx, models.Event{Title: "Fair", Date: "2025-02-20", Category: "academic"}, "a@ihsb.edu")

	if _, err := repo.Update(ctx, created.ID, patch(t, `{"category":"party"}`), "a@ihsb.edu"); !apperr.Is(err, apperr.Validation) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if _, err := repo.Update(ctx, created.ID, patch(t, `{"featured":"yes"}`), "a@ihsb.edu"); !apperr.Is(err, apperr.Validation) {
		t.Fatalf("wrong JSON type: err = %v, want validation error", err)
	}

	got, _ := repo.GetByID(ctx, created.ID)
	if got.Category != "academic" || got.Featured {
		t.Errorf("record changed by rejected update: %+v", got)
	}
}

func TestUpdate_ImmutableField(t *testing.T) {
	ctx := context.Background()
	repo := announcementRepo(docstore.NewMemory())
	created, _ := repo.Create(ctx, models.Announcement{Title: "Fixed"}, "a@ihsb.edu")

	if _, err := repo.Update(ctx, created.ID, patch(t, `{"title":"Changed"}`), "a@ihsb.edu"); !apperr.Is(err, apperr.Validation) {
		t.Errorf("changing an immutable field: err = %v, want validation error", err)
	}
	if _, err := repo.Update(ctx, created.ID, patch(t, `{"title":"Fixed","priority":"high"}`), "a@ihsb.edu"); err != nil {
		t.Errorf("resending the same immutable value should pass: %v", err)
	}
}

func TestTimeFields_StoredNatively(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory()
	repo := announcementRepo(store)

	got, err := repo.Create(ctx, models.Announcement{Title: "Exam week", ExpiresAt: "2030-06-01T12:00:00+02:00"}, "a@ihsb.edu")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.ExpiresAt != "2030-06-01T10:00:00.000Z" {
		t.Errorf("expiresAt = %q, want normalized UTC ISO", got.ExpiresAt)
	}

	if _, err := repo.Create(ctx, models.Announcement{Title: "Bad", ExpiresAt: "soon"}, "a@ihsb.edu"); !apperr.Is(err, apperr.Validation) {
		t.Errorf("bad timestamp: err = %v, want validation error", err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := eventRepo(docstore.NewMemory())
	created, _ := repo.Create(ctx, models.Event{Title: "Fair", Date: "2025-02-20", Category: "academic"}, "a@ihsb.edu")

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("GetByID after delete: err = %v", err)
	}
	if err := repo.Delete(ctx, created.ID); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("second Delete: err = %v", err)
	}
}

func TestGetAll_DefaultSort(t *testing.T) {
	ctx := context.Background()
	repo := eventRepo(docstore.NewMemory())
	for _, d := range []string{"2025-01-01", "2025-03-01", "2025-02-01"} {
		if _, err := repo.Create(ctx, models.Event{Title: d, Date: d, Category: "other"}, "a@ihsb.edu"); err != nil {
			t.Fatal(err)
		}
	}
	all, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var dates []string
	for _, e := range all {
		dates = append(dates, e.Date)
	}
	if diff := cmp.Diff([]string{"2025-03-01", "2025-02-01", "2025-01-01"}, dates); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}

func TestUpsert(t *testing.T) {
	ctx := context.Background()
	repo := crud.New(docstore.NewMemory(), crud.Schema[models.AlumniYearStats]{Collection: "alumni_year_stats"})

	first, err := repo.Upsert(ctx, "2023", models.AlumniYearStats{Year: "2023", Count: "450+"}, "a@ihsb.edu")
	if err != nil {
		t.Fatalf("Upsert insert: %v", err)
	}
	second, err := repo.Upsert(ctx, "2023", models.AlumniYearStats{Year: "2023", Count: "12", AutoCalculated: true}, "b@ihsb.edu")
	if err != nil {
		t.Fatalf("Upsert update: %v", err)
	}
	if second.ID != "2023" || second.Count != "12" || !second.AutoCalculated {
		t.Errorf("unexpected record %+v", second)
	}
	if second.CreatedBy != "a@ihsb.edu" || second.UpdatedBy != "b@ihsb.edu" {
		t.Errorf("attribution = %q/%q", second.CreatedBy, second.UpdatedBy)
	}
	if second.CreatedAt != first.CreatedAt {
		t.Errorf("createdAt changed")
	}
}

func TestValidate_SlugTag(t *testing.T) {
	tests := []struct {
		slug string
		ok   bool
	}{
		{"inter-school-football-2024", true},
		{"chess", true},
		{"Chess", false},
		{"double--hyphen", false},
		{"-leading", false},
		{"with space", false},
	}
	for _, tt := range tests {
		if got := crud.IsSlug(tt.slug); got != tt.ok {
			t.Errorf("IsSlug(%q) = %v, want %v", tt.slug, got, tt.ok)
		}
	}
}

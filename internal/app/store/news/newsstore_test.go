package newsstore_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ihsb/ihsbsite/internal/app/store/docstore"
	newsstore "github.com/ihsb/ihsbsite/internal/app/store/news"
	"github.com/ihsb/ihsbsite/internal/domain/models"
)

func TestCreate_DefaultsAndPhotos(t *testing.T) {
	s := newsstore.New(docstore.NewMemory())
	n, err := s.Create(context.Background(), models.NewsItem{
		Title:  "Prize giving",
		Date:   "2025-02-01",
		Photos: []string{" https://cdn.example.com/1.jpg ", "", "https://cdn.example.com/2.jpg"},
	}, "a@ihsb.edu")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if n.Category != models.NewsGeneral {
		t.Errorf("category = %q, want general", n.Category)
	}
	want := []string{"https://cdn.example.com/1.jpg", "https://cdn.example.com/2.jpg"}
	if diff := cmp.Diff(want, n.Photos); diff != "" {
		t.Errorf("photos (-want +got):\n%s", diff)
	}

	empty, err := s.Create(context.Background(), models.NewsItem{Title: "No photos", Date: "2025-02-02"}, "a@ihsb.edu")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if empty.Photos == nil || len(empty.Photos) != 0 {
		t.Errorf("photos = %#v, want empty list", empty.Photos)
	}
}

func TestByCategory(t *testing.T) {
	ctx := context.Background()
	s := newsstore.New(docstore.NewMemory())
	for _, n := range []models.NewsItem{
		{Title: "Cup final", Date: "2025-01-05", Category: "sports"},
		{Title: "New library", Date: "2025-01-06", Category: "news"},
		{Title: "League", Date: "2025-01-07", Category: "sports"},
	} {
		if _, err := s.Create(ctx, n, "a@ihsb.edu"); err != nil {
			t.Fatal(err)
		}
	}
	got, err := s.ByCategory(ctx, "sports")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Title != "League" || got[1].Title != "Cup final" {
		t.Errorf("ByCategory(sports) = %+v", got)
	}
}

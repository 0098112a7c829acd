package docstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ihsb/ihsbsite/internal/app/store/docstore"
	"github.com/ihsb/ihsbsite/internal/testutil"
)

// backends runs fn against the in-memory store and, when a server is
// reachable, against MongoDB.
func backends(t *testing.T, fn func(t *testing.T, s docstore.Store)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, docstore.NewMemory())
	})
	t.Run("mongo", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		fn(t, docstore.NewMongo(db))
	})
}

func TestCreateGet_StampsTimestamps(t *testing.T) {
	backends(t, func(t *testing.T, s docstore.Store) {
		ctx, cancel := testutil.TestContext()
		defer cancel()

		before := time.Now().UTC().Add(-time.Second)
		id, err := s.Create(ctx, "events", docstore.Document{
			"title":     "Science Fair",
			"createdAt": "1999-01-01T00:00:00.000Z",
			"id":        "caller-chosen",
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if id == "" || id == "caller-chosen" {
			t.Fatalf("Create returned id %q, want store-assigned id", id)
		}

		doc, err := s.Get(ctx, "events", id)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if doc.ID() != id {
			t.Errorf("id = %q, want %q", doc.ID(), id)
		}
		if doc["title"] != "Science Fair" {
			t.Errorf("title = %v", doc["title"])
		}
		if _, ok := doc["_id"]; ok {
			t.Error("_id should not be exposed")
		}

		created, err := docstore.ParseTime(doc.String("createdAt"))
		if err != nil {
			t.Fatalf("createdAt not ISO: %v", doc["createdAt"])
		}
		if created.Before(before) {
			t.Errorf("createdAt %v predates the call; caller value must be ignored", created)
		}
		if doc.String("createdAt") != doc.String("updatedAt") {
			t.Errorf("createdAt %v != updatedAt %v on create", doc["createdAt"], doc["updatedAt"])
		}
	})
}

func TestGet_NotFound(t *testing.T) {
	backends(t, func(t *testing.T, s docstore.Store) {
		ctx, cancel := testutil.TestContext()
		defer cancel()

		_, err := s.Get(ctx, "events", "64b7f0c2a1b2c3d4e5f60718")
		if !errors.Is(err, docstore.ErrNotFound) {
			t.Errorf("Get missing: err = %v, want ErrNotFound", err)
		}
	})
}

func TestUpdate(t *testing.T) {
	backends(t, func(t *testing.T, s docstore.Store) {
		ctx, cancel := testutil.TestContext()
		defer cancel()

		id, err := s.Create(ctx, "news", docstore.Document{"title": "Old", "category": "sports"})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		orig, _ := s.Get(ctx, "news", id)

		time.Sleep(5 * time.Millisecond)
		if err := s.Update(ctx, "news", id, docstore.Document{"title": "New", "category": nil}); err != nil {
			t.Fatalf("Update: %v", err)
		}

		doc, err := s.Get(ctx, "news", id)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if doc["title"] != "New" {
			t.Errorf("title = %v, want New", doc["title"])
		}
		if _, ok := doc["category"]; ok {
			t.Errorf("category should be removed, got %v", doc["category"])
		}
		if doc.String("createdAt") != orig.String("createdAt") {
			t.Errorf("createdAt changed: %v -> %v", orig["createdAt"], doc["createdAt"])
		}
		if doc.String("updatedAt") <= orig.String("updatedAt") {
			t.Errorf("updatedAt did not advance: %v -> %v", orig["updatedAt"], doc["updatedAt"])
		}
	})
}

func TestUpdateDelete_MissingID(t *testing.T) {
	backends(t, func(t *testing.T, s docstore.Store) {
		ctx, cancel := testutil.TestContext()
		defer cancel()

		if err := s.Update(ctx, "news", "64b7f0c2a1b2c3d4e5f60718", docstore.Document{"title": "x"}); !errors.Is(err, docstore.ErrNotFound) {
			t.Errorf("Update missing: err = %v, want ErrNotFound", err)
		}

		id, _ := s.Create(ctx, "news", docstore.Document{"title": "x"})
		if err := s.Delete(ctx, "news", id); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if err := s.Delete(ctx, "news", id); !errors.Is(err, docstore.ErrNotFound) {
			t.Errorf("second Delete: err = %v, want ErrNotFound", err)
		}
	})
}

func TestList_FiltersSortLimit(t *testing.T) {
	backends(t, func(t *testing.T, s docstore.Store) {
		ctx, cancel := testutil.TestContext()
		defer cancel()

		seed := []docstore.Document{
			{"title": "A", "category": "sports", "date": "2025-01-10", "featured": true},
			{"title": "B", "category": "news", "date": "2025-03-01", "featured": false},
			{"title": "C", "category": "sports", "date": "2025-02-15", "featured": true},
			{"title": "D", "category": "general", "date": "2024-12-31", "featured": true},
		}
		for _, d := range seed {
			if _, err := s.Create(ctx, "news", d); err != nil {
				t.Fatalf("Create: %v", err)
			}
		}

		tests := []struct {
			name string
			q    docstore.Query
			want []string
		}{
			{"all by date desc", docstore.Query{Sort: []docstore.Sort{docstore.Desc("date")}}, []string{"B", "C", "A", "D"}},
			{"eq", docstore.Query{Filters: []docstore.Filter{docstore.Where("category", docstore.Eq, "sports")}, Sort: []docstore.Sort{docstore.Asc("date")}}, []string{"A", "C"}},
			{"ne", docstore.Query{Filters: []docstore.Filter{docstore.Where("category", docstore.Ne, "sports")}, Sort: []docstore.Sort{docstore.Asc("title")}}, []string{"B", "D"}},
			{"in", docstore.Query{Filters: []docstore.Filter{docstore.Where("category", docstore.In, []string{"news", "general"})}, Sort: []docstore.Sort{docstore.Asc("title")}}, []string{"B", "D"}},
			{"range", docstore.Query{Filters: []docstore.Filter{
				docstore.Where("date", docstore.Gte, "2025-01-01"),
				docstore.Where("date", docstore.Lt, "2025-03-01"),
			}, Sort: []docstore.Sort{docstore.Asc("date")}}, []string{"A", "C"}},
			{"bool and limit", docstore.Query{
				Filters: []docstore.Filter{docstore.Where("featured", docstore.Eq, true)},
				Sort:    []docstore.Sort{docstore.Desc("date")},
				Limit:   2,
			}, []string{"C", "A"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				docs, err := s.List(ctx, "news", tt.q)
				if err != nil {
					t.Fatalf("List: %v", err)
				}
				var got []string
				for _, d := range docs {
					got = append(got, d.String("title"))
				}
				if len(got) != len(tt.want) {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
				for i := range got {
					if got[i] != tt.want[i] {
						t.Fatalf("got %v, want %v", got, tt.want)
					}
				}
			})
		}
	})
}

func TestList_NativeTimesAsISO(t *testing.T) {
	backends(t, func(t *testing.T, s docstore.Store) {
		ctx, cancel := testutil.TestContext()
		defer cancel()

		past := time.Date(2025, 1, 1, 8, 30, 0, 0, time.UTC)
		future := time.Now().UTC().Add(48 * time.Hour)
		if _, err := s.Create(ctx, "announcements", docstore.Document{"title": "old", "expiresAt": past}); err != nil {
			t.Fatal(err)
		}
		if _, err := s.Create(ctx, "announcements", docstore.Document{"title": "new", "expiresAt": future}); err != nil {
			t.Fatal(err)
		}

		docs, err := s.List(ctx, "announcements", docstore.Query{
			Filters: []docstore.Filter{docstore.Where("expiresAt", docstore.Gt, time.Now().UTC())},
		})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(docs) != 1 || docs[0].String("title") != "new" {
			t.Fatalf("got %v, want only the unexpired announcement", docs)
		}

		all, _ := s.List(ctx, "announcements", docstore.Query{Sort: []docstore.Sort{docstore.Asc("expiresAt")}})
		if got := all[0].String("expiresAt"); got != "2025-01-01T08:30:00.000Z" {
			t.Errorf("expiresAt = %q, want ISO string", got)
		}
	})
}

func TestSet_UpsertKeepsCreatedAt(t *testing.T) {
	backends(t, func(t *testing.T, s docstore.Store) {
		ctx, cancel := testutil.TestContext()
		defer cancel()

		if err := s.Set(ctx, "alumni_year_stats", "2023", docstore.Document{"year": "2023", "count": "450+"}); err != nil {
			t.Fatalf("Set insert: %v", err)
		}
		first, err := s.Get(ctx, "alumni_year_stats", "2023")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}

		time.Sleep(5 * time.Millisecond)
		if err := s.Set(ctx, "alumni_year_stats", "2023", docstore.Document{"count": "12", "autoCalculated": true}); err != nil {
			t.Fatalf("Set update: %v", err)
		}
		second, _ := s.Get(ctx, "alumni_year_stats", "2023")

		if second.ID() != "2023" {
			t.Errorf("id = %q, want 2023", second.ID())
		}
		if second["count"] != "12" || second["autoCalculated"] != true || second["year"] != "2023" {
			t.Errorf("unexpected document after upsert: %v", second)
		}
		if second.String("createdAt") != first.String("createdAt") {
			t.Errorf("createdAt changed on upsert")
		}
	})
}

func TestMemory_Clock(t *testing.T) {
	m := docstore.NewMemory()
	fixed := time.Date(2025, 2, 20, 9, 0, 0, 123456789, time.UTC)
	m.SetClock(func() time.Time { return fixed })

	id, err := m.Create(context.Background(), "events", docstore.Document{"title": "Fair"})
	if err != nil {
		t.Fatal(err)
	}
	doc, _ := m.Get(context.Background(), "events", id)
	if got := doc.String("createdAt"); got != "2025-02-20T09:00:00.123Z" {
		t.Errorf("createdAt = %q", got)
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2025-02-20", time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC), true},
		{"2025-02-20T10:15:00Z", time.Date(2025, 2, 20, 10, 15, 0, 0, time.UTC), true},
		{"2025-02-20T10:15:00.250+02:00", time.Date(2025, 2, 20, 8, 15, 0, 250e6, time.UTC), true},
		{"2025-02-20T10:15", time.Date(2025, 2, 20, 10, 15, 0, 0, time.UTC), true},
		{"next tuesday", time.Time{}, false},
	}
	for _, tt := range tests {
		got, err := docstore.ParseTime(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseTime(%q) err = %v", tt.in, err)
			continue
		}
		if tt.ok && !got.Equal(tt.want) {
			t.Errorf("ParseTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

package notify_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ihsb/ihsbsite/internal/app/store/docstore"
	notificationstore "github.com/ihsb/ihsbsite/internal/app/store/notifications"
	"github.com/ihsb/ihsbsite/internal/app/system/notify"
	"github.com/ihsb/ihsbsite/internal/domain/models"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// brokenStore fails every write.
type brokenStore struct{ docstore.Store }

func (brokenStore) Create(context.Context, string, docstore.Document) (string, error) {
	return "", fmt.Errorf("write refused")
}

func TestRecord_WritesEntry(t *testing.T) {
	rec := notify.New(notificationstore.New(docstore.NewMemory()), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // a cancelled request must not drop the entry

	rec.Record(ctx, notify.Entry{
		Type: "event", Action: models.ActionCreated, Title: "Science Fair",
		ItemID: "e1", ItemHref: "/admin/events/e1",
		ActorID: "uid-1", ActorEmail: "staff@ihsb.edu", ActorName: "Staff",
	})

	got, err := rec.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}
	n := got[0]
	if n.Type != "event" || n.Action != "created" || n.CreatedBy != "uid-1" || n.CreatedByEmail != "staff@ihsb.edu" || n.ItemHref != "/admin/events/e1" {
		t.Errorf("unexpected entry %+v", n)
	}
	if n.ID == "" || n.CreatedAt == "" {
		t.Errorf("id/createdAt not assigned: %+v", n)
	}
}

func TestRecord_FailureIsLoggedNotReturned(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	rec := notify.New(notificationstore.New(brokenStore{docstore.NewMemory()}), zap.New(core))

	rec.Record(context.Background(), notify.Entry{Type: "news", Action: models.ActionDeleted, ItemID: "n1"})

	if logs.FilterMessage("failed to record notification").Len() != 1 {
		t.Errorf("expected one error log, got %v", logs.All())
	}
}

func TestRecord_NilRecorder(t *testing.T) {
	var rec *notify.Recorder
	rec.Record(context.Background(), notify.Entry{Type: "event"})
}

func TestRecent_OrderAndLimit(t *testing.T) {
	mem := docstore.NewMemory()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	i := 0
	mem.SetClock(func() time.Time { i++; return base.Add(time.Duration(i) * time.Minute) })

	rec := notify.New(notificationstore.New(mem), zap.NewNop())
	for n := 1; n <= 60; n++ {
		rec.Record(context.Background(), notify.Entry{Type: "news", Action: models.ActionCreated, Title: fmt.Sprintf("item %d", n)})
	}

	tests := []struct {
		limit int
		want  int
	}{
		{0, 20},
		{-3, 20},
		{5, 5},
		{50, 50},
		{500, 50},
	}
	for _, tt := range tests {
		got, err := rec.Recent(context.Background(), tt.limit)
		if err != nil {
			t.Fatalf("Recent(%d): %v", tt.limit, err)
		}
		if len(got) != tt.want {
			t.Errorf("Recent(%d) returned %d, want %d", tt.limit, len(got), tt.want)
		}
		if len(got) > 0 && got[0].Title != "item 60" {
			t.Errorf("Recent(%d) first = %q, want newest", tt.limit, got[0].Title)
		}
	}
}

package testutil

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	adminstore "github.com/ihsb/ihsbsite/internal/app/store/admins"
	"github.com/ihsb/ihsbsite/internal/app/store/docstore"
	eventstore "github.com/ihsb/ihsbsite/internal/app/store/events"
	sportstore "github.com/ihsb/ihsbsite/internal/app/store/sports"
	"github.com/ihsb/ihsbsite/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures creates records through the real stores so tests see the same
// defaults and validation as production.
type Fixtures struct {
	ds docstore.Store
	t  *testing.T
}

// NewFixtures seeds into ds.
func NewFixtures(t *testing.T, ds docstore.Store) *Fixtures {
	t.Helper()
	return &Fixtures{ds: ds, t: t}
}

// Store returns the underlying document store.
func (f *Fixtures) Store() docstore.Store { return f.ds }

// CreateEvent adds an academic event on date.
func (f *Fixtures) CreateEvent(ctx context.Context, title, date string, featured bool) models.Event {
	f.t.Helper()
	e, err := eventstore.New(f.ds).Create(ctx, models.Event{
		Title:    title,
		Date:     date,
		Category: models.EventAcademic,
		Featured: featured,
	}, "fixtures@ihsb.test")
	if err != nil {
		f.t.Fatalf("CreateEvent: %v", err)
	}
	return e
}

// CreateSportsAchievement adds a football championship.
func (f *Fixtures) CreateSportsAchievement(ctx context.Context, title string) models.SportsAchievement {
	f.t.Helper()
	a, err := sportstore.New(f.ds).Create(ctx, models.SportsAchievement{
		Title:     title,
		Sport:     "Football",
		Placement: "Champion",
		Date:      "2024-11-02",
	}, "fixtures@ihsb.test")
	if err != nil {
		f.t.Fatalf("CreateSportsAchievement: %v", err)
	}
	return a
}

// CreateAdmin adds an active admin account with role.
func (f *Fixtures) CreateAdmin(ctx context.Context, email, role string) models.AdminAccount {
	f.t.Helper()
	a, err := adminstore.New(f.ds).Create(ctx, models.AdminAccount{Email: email, Name: "Fixture Admin", Role: role}, "fixtures@ihsb.test")
	if err != nil {
		f.t.Fatalf("CreateAdmin: %v", err)
	}
	return a
}

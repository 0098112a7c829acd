package metricsstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ihsb/ihsbsite/internal/app/store/docstore"
	metricsstore "github.com/ihsb/ihsbsite/internal/app/store/metrics"
	"github.com/ihsb/ihsbsite/internal/domain/models"
	"github.com/ihsb/ihsbsite/internal/testutil"
)

func TestFetchDashboardCounts_Empty(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()

	got := metricsstore.FetchDashboardCounts(ctx, docstore.NewMemory())
	if diff := cmp.Diff(metricsstore.Counts{}, got); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchDashboardCounts_WithData(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ds := docstore.NewMemory()
	fx := testutil.NewFixtures(t, ds)
	fx.CreateEvent(ctx, "Science Fair", "2025-03-14", true)
	fx.CreateEvent(ctx, "Prize Giving", "2025-06-01", false)
	fx.CreateSportsAchievement(ctx, "Chess Open")
	fx.CreateAdmin(ctx, "staff@ihsb.test", models.RoleAdmin)

	for _, status := range []string{models.AdmissionPending, models.AdmissionApproved} {
		if _, err := ds.Create(ctx, "admissions", docstore.Document{"status": status}); err != nil {
			t.Fatal(err)
		}
	}

	got := metricsstore.FetchDashboardCounts(ctx, ds)
	want := metricsstore.Counts{
		Events:             2,
		SportsAchievements: 1,
		Admissions:         2,
		PendingAdmissions:  1,
		Admins:             1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
}

type failingList struct{ docstore.Store }

func (failingList) List(context.Context, string, docstore.Query) ([]docstore.Document, error) {
	return nil, errors.New("down")
}

func TestFetchDashboardCounts_ToleratesErrors(t *testing.T) {
	got := metricsstore.FetchDashboardCounts(context.Background(), failingList{docstore.NewMemory()})
	if got != (metricsstore.Counts{}) {
		t.Errorf("counts = %+v, want zeros", got)
	}
}

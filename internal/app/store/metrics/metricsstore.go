package metricsstore

import (
	"context"
	"sync"

	adminstore "github.com/ihsb/ihsbsite/internal/app/store/admins"
	academicstore "github.com/ihsb/ihsbsite/internal/app/store/academics"
	admissionstore "github.com/ihsb/ihsbsite/internal/app/store/admissions"
	alumnistore "github.com/ihsb/ihsbsite/internal/app/store/alumni"
	announcementstore "github.com/ihsb/ihsbsite/internal/app/store/announcements"
	"github.com/ihsb/ihsbsite/internal/app/store/docstore"
	eventstore "github.com/ihsb/ihsbsite/internal/app/store/events"
	newsstore "github.com/ihsb/ihsbsite/internal/app/store/news"
	sportstore "github.com/ihsb/ihsbsite/internal/app/store/sports"
	"github.com/ihsb/ihsbsite/internal/domain/models"
	"golang.org/x/sync/errgroup"
)

// Counts is the set of totals shown on the admin dashboard.
type Counts struct {
	Events               int `json:"events"`
	Announcements        int `json:"announcements"`
	News                 int `json:"news"`
	SportsAchievements   int `json:"sportsAchievements"`
	AcademicAchievements int `json:"academicAchievements"`
	Admissions           int `json:"admissions"`
	PendingAdmissions    int `json:"pendingAdmissions"`
	FeaturedAlumni       int `json:"featuredAlumni"`
	AlumniStories        int `json:"alumniStories"`
	Admins               int `json:"admins"`
}

type counter struct {
	collection string
	filters    []docstore.Filter
	dst        *int
}

// FetchDashboardCounts returns the dashboard totals, counting collections
// concurrently. Intentionally tolerant: a counter whose query fails stays 0.
func FetchDashboardCounts(ctx context.Context, ds docstore.Store) Counts {
	var out Counts
	counters := []counter{
		{eventstore.Collection, nil, &out.Events},
		{announcementstore.Collection, nil, &out.Announcements},
		{newsstore.Collection, nil, &out.News},
		{sportstore.Collection, nil, &out.SportsAchievements},
		{academicstore.Collection, nil, &out.AcademicAchievements},
		{admissionstore.Collection, nil, &out.Admissions},
		{admissionstore.Collection, []docstore.Filter{docstore.Where("status", docstore.Eq, models.AdmissionPending)}, &out.PendingAdmissions},
		{alumnistore.FeaturedCollection, nil, &out.FeaturedAlumni},
		{alumnistore.StoriesCollection, nil, &out.AlumniStories},
		{adminstore.Collection, nil, &out.Admins},
	}

	var mu sync.Mutex
	var g errgroup.Group
	for _, c := range counters {
		g.Go(func() error {
			docs, err := ds.List(ctx, c.collection, docstore.Query{Filters: c.filters})
			if err != nil {
				return nil
			}
			mu.Lock()
			*c.dst = len(docs)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

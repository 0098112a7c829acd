// internal/app/store/alumni/featured.go
package alumnistore

import (
	"context"
	"strings"

	"github.com/ihsb/ihsbsite/internal/app/store/crud"
	"github.com/ihsb/ihsbsite/internal/app/store/docstore"
	"github.com/ihsb/ihsbsite/internal/app/system/normalize"
	"github.com/ihsb/ihsbsite/internal/domain/models"
)

// Collection names.
const (
	FeaturedCollection  = "featured_alumni"
	StoriesCollection   = "alumni_stories"
	YearStatsCollection = "alumni_year_stats"
)

// FeaturedStore holds alumni profiles.
type FeaturedStore struct {
	*crud.Repository[models.FeaturedAlumnus]
}

func NewFeatured(ds docstore.Store) *FeaturedStore {
	return &FeaturedStore{crud.New(ds, crud.Schema[models.FeaturedAlumnus]{
		Collection: FeaturedCollection,
		Sort:       []docstore.Sort{docstore.Desc("graduationYear"), docstore.Asc("name")},
		Prepare: func(a *models.FeaturedAlumnus) error {
			a.Name = normalize.Name(a.Name)
			a.GraduationYear = strings.TrimSpace(a.GraduationYear)
			a.Email = normalize.Email(a.Email)
			return nil
		},
	})}
}

// Featured returns profiles flagged for the public page, optionally for one
// graduation year.
func (s *FeaturedStore) Featured(ctx context.Context, year string) ([]models.FeaturedAlumnus, error) {
	q := docstore.Query{Filters: []docstore.Filter{docstore.Where("featured", docstore.Eq, true)}}
	if year != "" {
		q.Filters = append(q.Filters, docstore.Where("graduationYear", docstore.Eq, year))
	}
	return s.Find(ctx, q)
}

// ByGraduationYear returns every profile for year.
func (s *FeaturedStore) ByGraduationYear(ctx context.Context, year string) ([]models.FeaturedAlumnus, error) {
	return s.Find(ctx, docstore.Query{Filters: []docstore.Filter{docstore.Where("graduationYear", docstore.Eq, year)}})
}

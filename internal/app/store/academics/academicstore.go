// internal/app/store/academics/academicstore.go
package academicstore

import (
	"context"
	"strings"

	"github.com/ihsb/ihsbsite/internal/app/store/crud"
	"github.com/ihsb/ihsbsite/internal/app/store/docstore"
	"github.com/ihsb/ihsbsite/internal/domain/models"
)

const Collection = "academic_achievements"

type Store struct {
	*crud.Repository[models.AcademicAchievement]
}

func New(ds docstore.Store) *Store {
	return &Store{crud.New(ds, crud.Schema[models.AcademicAchievement]{
		Collection: Collection,
		Sort:       []docstore.Sort{docstore.Desc("year"), docstore.Asc("session"), docstore.Asc("name")},
		Prepare: func(a *models.AcademicAchievement) error {
			a.Name = strings.TrimSpace(a.Name)
			a.Result = strings.TrimSpace(a.Result)
			a.Year = strings.TrimSpace(a.Year)
			a.Session = strings.TrimSpace(a.Session)
			return nil
		},
	})}
}

// Search returns achievements matching the given year and session; blank
// arguments are not filtered on.
func (s *Store) Search(ctx context.Context, year, session string) ([]models.AcademicAchievement, error) {
	var q docstore.Query
	if year != "" {
		q.Filters = append(q.Filters, docstore.Where("year", docstore.Eq, year))
	}
	if session != "" {
		q.Filters = append(q.Filters, docstore.Where("session", docstore.Eq, session))
	}
	return s.Find(ctx, q)
}

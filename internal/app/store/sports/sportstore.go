// internal/app/store/sports/sportstore.go
package sportstore

import (
	"context"
	"errors"
	"strings"

	"github.com/ihsb/ihsbsite/internal/app/store/crud"
	"github.com/ihsb/ihsbsite/internal/app/store/docstore"
	"github.com/ihsb/ihsbsite/internal/app/system/apperr"
	"github.com/ihsb/ihsbsite/internal/app/system/htmlsanitize"
	"github.com/ihsb/ihsbsite/internal/app/system/inputval"
	"github.com/ihsb/ihsbsite/internal/domain/models"
)

const Collection = "sports_achievements"

// ErrDuplicateSlug is returned when a slug is already taken.
var ErrDuplicateSlug = apperr.Invalid("slug already exists")

type Store struct {
	*crud.Repository[models.SportsAchievement]
}

func New(ds docstore.Store) *Store {
	return &Store{crud.New(ds, crud.Schema[models.SportsAchievement]{
		Collection: Collection,
		Sort:       []docstore.Sort{docstore.Desc("date"), docstore.Desc("createdAt")},
		Immutable:  []string{"slug"},
		Defaults: func(a *models.SportsAchievement) {
			if strings.TrimSpace(a.Slug) == "" {
				a.Slug = inputval.Slugify(a.Title)
			}
		},
		Prepare: func(a *models.SportsAchievement) error {
			a.Title = strings.TrimSpace(a.Title)
			a.Slug = strings.TrimSpace(a.Slug)
			a.LongDescription = htmlsanitize.Sanitize(a.LongDescription)
			photos := make([]string, 0, len(a.Photos))
			for _, p := range a.Photos {
				if p = strings.TrimSpace(p); p != "" {
					photos = append(photos, p)
				}
			}
			a.Photos = photos
			return nil
		},
	})}
}

// Create stores a new achievement after checking its slug is free. A unique
// index backs the check against concurrent creates.
func (s *Store) Create(ctx context.Context, a models.SportsAchievement, creatorEmail string) (models.SportsAchievement, error) {
	if strings.TrimSpace(a.Slug) == "" {
		a.Slug = inputval.Slugify(a.Title)
	}
	if a.Slug != "" {
		_, err := s.BySlug(ctx, a.Slug)
		if err == nil {
			return models.SportsAchievement{}, ErrDuplicateSlug
		}
		if !apperr.Is(err, apperr.NotFound) {
			return models.SportsAchievement{}, err
		}
	}
	out, err := s.Repository.Create(ctx, a, creatorEmail)
	if errors.Is(err, docstore.ErrDuplicate) {
		return models.SportsAchievement{}, ErrDuplicateSlug
	}
	return out, err
}

// BySlug returns the achievement with slug, or NotFound. A malformed slug
// is NotFound without a query.
func (s *Store) BySlug(ctx context.Context, slug string) (models.SportsAchievement, error) {
	if !crud.IsSlug(slug) {
		return models.SportsAchievement{}, apperr.Missing("sports achievement not found")
	}
	a, err := s.FindOne(ctx, docstore.Query{Filters: []docstore.Filter{docstore.Where("slug", docstore.Eq, slug)}})
	if errors.Is(err, docstore.ErrNotFound) {
		return a, apperr.Missing("sports achievement not found")
	}
	return a, err
}

// BySport returns the achievements for one sport, newest first.
func (s *Store) BySport(ctx context.Context, sport string) ([]models.SportsAchievement, error) {
	return s.Find(ctx, docstore.Query{Filters: []docstore.Filter{docstore.Where("sport", docstore.Eq, sport)}})
}

// internal/app/store/announcements/announcementstore.go
package announcementstore

import (
	"context"
	"strings"
	"time"

	"github.com/ihsb/ihsbsite/internal/app/store/crud"
	"github.com/ihsb/ihsbsite/internal/app/store/docstore"
	"github.com/ihsb/ihsbsite/internal/app/system/htmlsanitize"
	"github.com/ihsb/ihsbsite/internal/domain/models"
)

const Collection = "announcements"

type Store struct {
	*crud.Repository[models.Announcement]
}

func New(ds docstore.Store) *Store {
	return &Store{crud.New(ds, crud.Schema[models.Announcement]{
		Collection: Collection,
		Sort:       []docstore.Sort{docstore.Desc("createdAt")},
		TimeFields: []string{"expiresAt"},
		Defaults: func(a *models.Announcement) {
			if a.Priority == "" {
				a.Priority = models.PriorityMedium
			}
			if a.IsActive == nil {
				a.IsActive = models.BoolPtr(true)
			}
		},
		Prepare: func(a *models.Announcement) error {
			a.Title = strings.TrimSpace(a.Title)
			a.Priority = strings.ToLower(strings.TrimSpace(a.Priority))
			a.Content = htmlsanitize.Sanitize(a.Content)
			return nil
		},
	})}
}

// Live returns the announcements live at now. Activity is filtered in the
// store; expiry is checked after the fetch since an absent expiresAt also
// counts as live.
func (s *Store) Live(ctx context.Context, now time.Time) ([]models.Announcement, error) {
	return s.live(ctx, now, false)
}

// LiveFeatured is Live restricted to featured announcements.
func (s *Store) LiveFeatured(ctx context.Context, now time.Time) ([]models.Announcement, error) {
	return s.live(ctx, now, true)
}

func (s *Store) live(ctx context.Context, now time.Time, featuredOnly bool) ([]models.Announcement, error) {
	q := docstore.Query{Filters: []docstore.Filter{docstore.Where("isActive", docstore.Eq, true)}}
	if featuredOnly {
		q.Filters = append(q.Filters, docstore.Where("featured", docstore.Eq, true))
	}
	items, err := s.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	out := items[:0]
	for _, a := range items {
		if a.Live(now) {
			out = append(out, a)
		}
	}
	return out, nil
}

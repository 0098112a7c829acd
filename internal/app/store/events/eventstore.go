// internal/app/store/events/eventstore.go
package eventstore

import (
	"context"
	"strings"
	"time"

	"github.com/ihsb/ihsbsite/internal/app/store/crud"
	"github.com/ihsb/ihsbsite/internal/app/store/docstore"
	"github.com/ihsb/ihsbsite/internal/app/system/apperr"
	"github.com/ihsb/ihsbsite/internal/app/system/inputval"
	"github.com/ihsb/ihsbsite/internal/domain/models"
)

// Collection holds events.
const Collection = "events"

type Store struct {
	*crud.Repository[models.Event]
}

func New(ds docstore.Store) *Store {
	return &Store{crud.New(ds, crud.Schema[models.Event]{
		Collection: Collection,
		Sort:       []docstore.Sort{docstore.Desc("date"), docstore.Desc("createdAt")},
		Prepare:    prepare,
	})}
}

func prepare(e *models.Event) error {
	e.Title = strings.TrimSpace(e.Title)
	e.Category = strings.ToLower(strings.TrimSpace(e.Category))
	e.RegistrationURL = strings.TrimSpace(e.RegistrationURL)
	if !e.RegistrationRequired {
		e.RegistrationURL = ""
	} else if e.RegistrationURL == "" {
		return apperr.Invalid("registrationUrl is required when registration is required")
	} else if !inputval.IsValidHTTPURL(e.RegistrationURL) {
		return apperr.Invalid("registrationUrl must be an http or https URL")
	}
	return nil
}

// Featured returns featured events, optionally restricted to one category.
func (s *Store) Featured(ctx context.Context, category string) ([]models.Event, error) {
	q := docstore.Query{Filters: []docstore.Filter{docstore.Where("featured", docstore.Eq, true)}}
	if category != "" {
		q.Filters = append(q.Filters, docstore.Where("category", docstore.Eq, category))
	}
	return s.Find(ctx, q)
}

// ByCategory returns all events in category.
func (s *Store) ByCategory(ctx context.Context, category string) ([]models.Event, error) {
	return s.Find(ctx, docstore.Query{Filters: []docstore.Filter{docstore.Where("category", docstore.Eq, category)}})
}

// Upcoming returns events dated on or after from's calendar day, soonest
// first.
func (s *Store) Upcoming(ctx context.Context, from time.Time, limit int) ([]models.Event, error) {
	return s.Find(ctx, docstore.Query{
		Filters: []docstore.Filter{docstore.Where("date", docstore.Gte, from.UTC().Format(models.DateLayout))},
		Sort:    []docstore.Sort{docstore.Asc("date")},
		Limit:   limit,
	})
}

// internal/app/store/news/newsstore.go
package newsstore

import (
	"context"
	"strings"

	"github.com/ihsb/ihsbsite/internal/app/store/crud"
	"github.com/ihsb/ihsbsite/internal/app/store/docstore"
	"github.com/ihsb/ihsbsite/internal/domain/models"
)

const Collection = "news"

type Store struct {
	*crud.Repository[models.NewsItem]
}

func New(ds docstore.Store) *Store {
	return &Store{crud.New(ds, crud.Schema[models.NewsItem]{
		Collection: Collection,
		Sort:       []docstore.Sort{docstore.Desc("date"), docstore.Desc("createdAt")},
		Defaults: func(n *models.NewsItem) {
			if n.Category == "" {
				n.Category = models.NewsGeneral
			}
		},
		Prepare: func(n *models.NewsItem) error {
			n.Title = strings.TrimSpace(n.Title)
			n.Category = strings.ToLower(strings.TrimSpace(n.Category))
			n.Photos = compactURLs(n.Photos)
			return nil
		},
	})}
}

// compactURLs trims each URL and drops blanks, keeping order. The result is
// never nil so an empty gallery is stored as an empty list.
func compactURLs(in []string) []string {
	out := make([]string, 0, len(in))
	for _, u := range in {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// ByCategory returns news items in category, newest first.
func (s *Store) ByCategory(ctx context.Context, category string) ([]models.NewsItem, error) {
	return s.Find(ctx, docstore.Query{Filters: []docstore.Filter{docstore.Where("category", docstore.Eq, category)}})
}

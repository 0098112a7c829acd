package alumnistore

import (
	"context"
	"strings"

	"github.com/ihsb/ihsbsite/internal/app/store/crud"
	"github.com/ihsb/ihsbsite/internal/app/store/docstore"
	"github.com/ihsb/ihsbsite/internal/app/system/htmlsanitize"
	"github.com/ihsb/ihsbsite/internal/domain/models"
)

// StoryStore holds alumni stories. Stories are drafts until published.
type StoryStore struct {
	*crud.Repository[models.AlumniStory]
}

func NewStories(ds docstore.Store) *StoryStore {
	return &StoryStore{crud.New(ds, crud.Schema[models.AlumniStory]{
		Collection: StoriesCollection,
		Sort:       []docstore.Sort{docstore.Desc("date"), docstore.Desc("createdAt")},
		Prepare: func(st *models.AlumniStory) error {
			st.Title = strings.TrimSpace(st.Title)
			st.Author = strings.TrimSpace(st.Author)
			st.Content = htmlsanitize.Sanitize(st.Content)
			return nil
		},
	})}
}

// Published returns published stories, newest first.
func (s *StoryStore) Published(ctx context.Context) ([]models.AlumniStory, error) {
	return s.Find(ctx, docstore.Query{Filters: []docstore.Filter{docstore.Where("published", docstore.Eq, true)}})
}

// PublishedFeatured returns published stories that are also featured.
func (s *StoryStore) PublishedFeatured(ctx context.Context) ([]models.AlumniStory, error) {
	return s.Find(ctx, docstore.Query{Filters: []docstore.Filter{
		docstore.Where("published", docstore.Eq, true),
		docstore.Where("featured", docstore.Eq, true),
	}})
}

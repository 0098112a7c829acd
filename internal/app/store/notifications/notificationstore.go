// internal/app/store/notifications/notificationstore.go
package notificationstore

import (
	"context"

	"github.com/ihsb/ihsbsite/internal/app/store/docstore"
	"github.com/ihsb/ihsbsite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
)

const Collection = "notifications"

// Store is the append-only activity feed. It has no update or delete.
type Store struct {
	ds docstore.Store
}

func New(ds docstore.Store) *Store {
	return &Store{ds: ds}
}

// Insert appends n and returns its id. Any id or createdAt on n is ignored.
func (s *Store) Insert(ctx context.Context, n models.Notification) (string, error) {
	return s.ds.Create(ctx, Collection, docstore.Document{
		"type":           n.Type,
		"action":         n.Action,
		"title":          n.Title,
		"description":    n.Description,
		"itemId":         n.ItemID,
		"itemHref":       n.ItemHref,
		"createdBy":      n.CreatedBy,
		"createdByEmail": n.CreatedByEmail,
		"createdByName":  n.CreatedByName,
	})
}

// Latest returns up to limit entries, newest first.
func (s *Store) Latest(ctx context.Context, limit int) ([]models.Notification, error) {
	docs, err := s.ds.List(ctx, Collection, docstore.Query{
		Sort:  []docstore.Sort{docstore.Desc("createdAt"), docstore.Desc("id")},
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}
	out := make([]models.Notification, 0, len(docs))
	for _, d := range docs {
		raw, err := bson.Marshal(map[string]any(d))
		if err != nil {
			return nil, err
		}
		var n models.Notification
		if err := bson.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

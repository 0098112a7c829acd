// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// desired lists the indexes each collection needs. Listing queries sort by
// these keys; the slug index also backs slug uniqueness.
var desired = map[string][]mongo.IndexModel{
	"events": {
		idx("idx_events_date", bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}}),
		idx("idx_events_featured_category", bson.D{{Key: "featured", Value: 1}, {Key: "category", Value: 1}, {Key: "date", Value: -1}}),
	},
	"announcements": {
		idx("idx_announcements_active", bson.D{{Key: "isActive", Value: 1}, {Key: "createdAt", Value: -1}}),
		idx("idx_announcements_expires", bson.D{{Key: "expiresAt", Value: 1}}),
	},
	"news": {
		idx("idx_news_category_date", bson.D{{Key: "category", Value: 1}, {Key: "date", Value: -1}}),
	},
	"sports_achievements": {
		unique("uniq_sports_slug", bson.D{{Key: "slug", Value: 1}}),
		idx("idx_sports_sport_date", bson.D{{Key: "sport", Value: 1}, {Key: "date", Value: -1}}),
	},
	"academic_achievements": {
		idx("idx_academics_year_session", bson.D{{Key: "year", Value: -1}, {Key: "session", Value: 1}, {Key: "name", Value: 1}}),
	},
	"admissions": {
		idx("idx_admissions_status_created", bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}),
		idx("idx_admissions_guardian_email", bson.D{{Key: "guardianEmail", Value: 1}}),
	},
	"featured_alumni": {
		idx("idx_alumni_featured_year", bson.D{{Key: "featured", Value: 1}, {Key: "graduationYear", Value: -1}}),
	},
	"alumni_stories": {
		idx("idx_stories_published_date", bson.D{{Key: "published", Value: 1}, {Key: "featured", Value: 1}, {Key: "date", Value: -1}}),
	},
	"notifications": {
		idx("idx_notifications_created", bson.D{{Key: "createdAt", Value: -1}}),
	},
}

func idx(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetName(name)}
}

func unique(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetName(name).SetUnique(true)}
}

/*
EnsureAll is called at startup. It is idempotent. Problems are aggregated
so every failing collection is reported and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string
	for _, coll := range Collections() {
		if err := ensureIndexSet(ctx, db.Collection(coll), desired[coll]); err != nil {
			problems = append(problems, coll+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// Collections returns the indexed collections in a stable order.
func Collections() []string {
	return []string{
		"events", "announcements", "news", "sports_achievements",
		"academic_achievements", "admissions", "featured_alumni",
		"alumni_stories", "notifications",
	}
}

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func isUnique(b *bool) bool { return b != nil && *b }

func listExisting(ctx context.Context, coll *mongo.Collection) (map[string]existingIndex, error) {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[string]existingIndex{}
	for cur.Next(ctx) {
		var ix existingIndex
		if err := cur.Decode(&ix); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		out[keySig(ix.Key)] = ix
	}
	return out, cur.Err()
}

// ensureIndexSet reconciles coll's indexes with models: matching indexes are
// reused, ones whose name or uniqueness differ are dropped and recreated,
// missing ones are created.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	existing, err := listExisting(ctx, coll)
	if err != nil {
		// A collection that does not exist yet has no indexes to list.
		existing = map[string]existingIndex{}
	}

	var errs []string
	for _, m := range models {
		name := *m.Options.Name
		wantUnique := isUnique(m.Options.Unique)
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()

		if ex, ok := existing[sig]; ok {
			if ex.Name == name && isUnique(ex.Unique) == wantUnique {
				zap.L().Debug("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", name))
				continue
			}
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s: drop %s failed: %v", name, ex.Name, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if wantUnique && wafflemongo.IsDup(err) {
				errs = append(errs, fmt.Sprintf("%s: cannot create unique index on %s (duplicates present)", name, sig))
			} else {
				errs = append(errs, fmt.Sprintf("%s: %v", name, err))
			}
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", wantUnique),
			zap.Duration("took", time.Since(start)))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

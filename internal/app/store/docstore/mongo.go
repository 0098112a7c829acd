package docstore

import (
	"context"
	"errors"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/ihsb/ihsbsite/internal/app/system/apperr"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo is a Store backed by a MongoDB database. Store-assigned ids are
// ObjectIDs; Set uses the caller's string id as _id.
type Mongo struct {
	db *mongo.Database
}

// NewMongo wraps db.
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

// idFilter matches an id given either as an ObjectID hex string or as a
// string key.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{oid, id}}}
	}
	return bson.M{"_id": id}
}

func upstream(err error, op, collection string) error {
	if wafflemongo.IsDup(err) {
		return ErrDuplicate
	}
	return apperr.Wrap(apperr.Upstream, err, "mongo "+op+" "+collection)
}

func (m *Mongo) Get(ctx context.Context, collection, id string) (Document, error) {
	var raw bson.M
	err := m.db.Collection(collection).FindOne(ctx, idFilter(id)).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, upstream(err, "find", collection)
	}
	return toDocument(raw), nil
}

func (m *Mongo) List(ctx context.Context, collection string, q Query) ([]Document, error) {
	opts := options.Find()
	if len(q.Sort) > 0 {
		sort := bson.D{}
		for _, s := range q.Sort {
			dir := 1
			if s.Desc {
				dir = -1
			}
			sort = append(sort, bson.E{Key: mongoField(s.Field), Value: dir})
		}
		opts.SetSort(sort)
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cur, err := m.db.Collection(collection).Find(ctx, mongoFilter(q.Filters), opts)
	if err != nil {
		return nil, upstream(err, "find", collection)
	}
	defer cur.Close(ctx)

	var raws []bson.M
	if err := cur.All(ctx, &raws); err != nil {
		return nil, upstream(err, "decode", collection)
	}
	out := make([]Document, 0, len(raws))
	for _, raw := range raws {
		out = append(out, toDocument(raw))
	}
	return out, nil
}

func (m *Mongo) Create(ctx context.Context, collection string, fields Document) (string, error) {
	now := Now()
	doc := bson.M(clean(fields))
	oid := primitive.NewObjectID()
	doc["_id"] = oid
	doc[FieldCreatedAt] = now
	doc[FieldUpdatedAt] = now

	if _, err := m.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		return "", upstream(err, "insert", collection)
	}
	return oid.Hex(), nil
}

func (m *Mongo) Set(ctx context.Context, collection, id string, fields Document) error {
	now := Now()
	set, unset := splitUpdate(clean(fields))
	set[FieldUpdatedAt] = now
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{FieldCreatedAt: now},
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	_, err := m.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, update, options.Update().SetUpsert(true))
	if err != nil {
		return upstream(err, "upsert", collection)
	}
	return nil
}

func (m *Mongo) Update(ctx context.Context, collection, id string, fields Document) error {
	set, unset := splitUpdate(clean(fields))
	set[FieldUpdatedAt] = Now()
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	res, err := m.db.Collection(collection).UpdateOne(ctx, idFilter(id), update)
	if err != nil {
		return upstream(err, "update", collection)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) Delete(ctx context.Context, collection, id string) error {
	res, err := m.db.Collection(collection).DeleteOne(ctx, idFilter(id))
	if err != nil {
		return upstream(err, "delete", collection)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func splitUpdate(fields Document) (bson.M, bson.M) {
	set, unset := bson.M{}, bson.M{}
	for k, v := range fields {
		if v == nil {
			unset[k] = ""
			continue
		}
		set[k] = v
	}
	return set, unset
}

func mongoField(field string) string {
	if field == FieldID {
		return "_id"
	}
	return field
}

var mongoOps = map[Op]string{
	Ne:  "$ne",
	Gt:  "$gt",
	Gte: "$gte",
	Lt:  "$lt",
	Lte: "$lte",
	In:  "$in",
}

func mongoFilter(filters []Filter) bson.M {
	out := bson.M{}
	for _, f := range filters {
		field := mongoField(f.Field)
		if f.Op == Eq || f.Op == "" {
			out[field] = f.Value
			continue
		}
		cond, _ := out[field].(bson.M)
		if cond == nil {
			cond = bson.M{}
		}
		cond[mongoOps[f.Op]] = f.Value
		out[field] = cond
	}
	return out
}

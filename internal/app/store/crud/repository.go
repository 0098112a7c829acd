// Package crud provides the repository shared by every content collection:
// typed create/read/update/delete over a docstore.Store with validation,
// defaults and attribution applied uniformly.
package crud

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ihsb/ihsbsite/internal/app/store/docstore"
	"github.com/ihsb/ihsbsite/internal/app/system/apperr"
)

// Schema describes one collection.
type Schema[T any] struct {
	Collection string
	// Sort is the default order for GetAll and Find.
	Sort []docstore.Sort
	// TimeFields hold ISO timestamps stored as native datetimes so they can
	// be range-queried.
	TimeFields []string
	// Immutable fields may be set on create but never changed afterwards.
	Immutable []string
	// Defaults fills unset fields before validation.
	Defaults func(*T)
	// Prepare normalizes a record before validation and may reject it.
	Prepare func(*T) error
}

// Repository is a typed view of one collection.
type Repository[T any] struct {
	store  docstore.Store
	schema Schema[T]
}

// New returns a repository for schema over store.
func New[T any](store docstore.Store, schema Schema[T]) *Repository[T] {
	return &Repository[T]{store: store, schema: schema}
}

// Collection returns the collection name.
func (r *Repository[T]) Collection() string { return r.schema.Collection }

// Store returns the underlying document store.
func (r *Repository[T]) Store() docstore.Store { return r.store }

// GetAll returns every record in the default order.
func (r *Repository[T]) GetAll(ctx context.Context) ([]T, error) {
	return r.Find(ctx, docstore.Query{})
}

// Find returns the records matching q. An empty q.Sort uses the default order.
func (r *Repository[T]) Find(ctx context.Context, q docstore.Query) ([]T, error) {
	if len(q.Sort) == 0 {
		q.Sort = r.schema.Sort
	}
	docs, err := r.store.List(ctx, r.schema.Collection, q)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		v, err := fromDoc[T](d)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// FindOne returns the first record matching q, or NotFound.
func (r *Repository[T]) FindOne(ctx context.Context, q docstore.Query) (T, error) {
	q.Limit = 1
	items, err := r.Find(ctx, q)
	if err != nil {
		var zero T
		return zero, err
	}
	if len(items) == 0 {
		var zero T
		return zero, docstore.ErrNotFound
	}
	return items[0], nil
}

// GetByID returns the record with id, or NotFound.
func (r *Repository[T]) GetByID(ctx context.Context, id string) (T, error) {
	doc, err := r.store.Get(ctx, r.schema.Collection, id)
	if err != nil {
		var zero T
		return zero, err
	}
	return fromDoc[T](doc)
}

// Create validates data, stamps creatorEmail as both creator and updater and
// stores it under a new id. The stored record is returned.
func (r *Repository[T]) Create(ctx context.Context, data T, creatorEmail string) (T, error) {
	var zero T
	doc, err := r.prepare(&data)
	if err != nil {
		return zero, err
	}
	doc["createdBy"] = creatorEmail
	doc["updatedBy"] = creatorEmail

	id, err := r.store.Create(ctx, r.schema.Collection, doc)
	if err != nil {
		return zero, err
	}
	return r.GetByID(ctx, id)
}

// Update applies patch to the record with id. Fields omitted from the patch
// keep their values; immutable fields may not change.
func (r *Repository[T]) Update(ctx context.Context, id string, patch Patch, updaterEmail string) (T, error) {
	var zero T
	cur, err := r.GetByID(ctx, id)
	if err != nil {
		return zero, err
	}
	next, err := merge(cur, patch)
	if err != nil {
		return zero, err
	}
	return r.replace(ctx, id, cur, next, updaterEmail)
}

func (r *Repository[T]) replace(ctx context.Context, id string, cur, next T, email string) (T, error) {
	var zero T
	if err := r.checkImmutable(cur, next); err != nil {
		return zero, err
	}
	doc, err := r.prepare(&next)
	if err != nil {
		return zero, err
	}
	old, err := toDoc(cur, nil)
	if err != nil {
		return zero, err
	}
	// Fields the new version no longer carries are removed.
	for k := range old {
		if _, ok := doc[k]; !ok {
			doc[k] = nil
		}
	}
	doc["updatedBy"] = email

	if err := r.store.Update(ctx, r.schema.Collection, id, doc); err != nil {
		return zero, err
	}
	return r.GetByID(ctx, id)
}

// Upsert writes data under a caller-chosen key, creating the record when
// absent. Used by collections keyed by a natural value.
func (r *Repository[T]) Upsert(ctx context.Context, key string, data T, email string) (T, error) {
	var zero T
	doc, err := r.prepare(&data)
	if err != nil {
		return zero, err
	}
	if _, err := r.store.Get(ctx, r.schema.Collection, key); err != nil {
		if !apperr.Is(err, apperr.NotFound) {
			return zero, err
		}
		doc["createdBy"] = email
	}
	doc["updatedBy"] = email
	if err := r.store.Set(ctx, r.schema.Collection, key, doc); err != nil {
		return zero, err
	}
	return r.GetByID(ctx, key)
}

// Delete removes the record with id, or returns NotFound.
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, r.schema.Collection, id)
}

// prepare applies defaults and normalization, validates and encodes v.
func (r *Repository[T]) prepare(v *T) (docstore.Document, error) {
	if r.schema.Defaults != nil {
		r.schema.Defaults(v)
	}
	if r.schema.Prepare != nil {
		if err := r.schema.Prepare(v); err != nil {
			return nil, err
		}
	}
	if err := Validate(v); err != nil {
		return nil, err
	}
	return toDoc(*v, r.schema.TimeFields)
}

func (r *Repository[T]) checkImmutable(cur, next T) error {
	if len(r.schema.Immutable) == 0 {
		return nil
	}
	a, err := jsonFields(cur)
	if err != nil {
		return err
	}
	b, err := jsonFields(next)
	if err != nil {
		return err
	}
	for _, f := range r.schema.Immutable {
		if !bytes.Equal(a[f], b[f]) {
			return apperr.Invalid(fmt.Sprintf("%s cannot be changed", f))
		}
	}
	return nil
}

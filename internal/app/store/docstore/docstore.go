// Package docstore is the uniform document store adapter every repository
// sits on. Documents are plain maps keyed by field name; the store assigns
// "id", "createdAt" and "updatedAt" and exposes every native datetime as an
// ISO-8601 string so callers never see the driver's representation.
package docstore

import (
	"context"
	"fmt"
	"time"

	"github.com/ihsb/ihsbsite/internal/app/system/apperr"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field names assigned by the store.
const (
	FieldID        = "id"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// ISOLayout is the timestamp format exposed to callers (UTC, millisecond
// precision, matching what browsers produce with Date.toISOString).
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

var (
	// ErrNotFound is returned by Get, Update and Delete for a missing id.
	ErrNotFound = apperr.Missing("document not found")
	// ErrDuplicate is returned when a write violates a unique index.
	ErrDuplicate = apperr.Invalid("a record with this key already exists")
)

// Document is one stored record.
type Document map[string]any

// String returns the string value stored under key, or "".
func (d Document) String(key string) string {
	s, _ := d[key].(string)
	return s
}

// ID returns the document id.
func (d Document) ID() string { return d.String(FieldID) }

// Op is a filter comparison.
type Op string

const (
	Eq  Op = "eq"
	Ne  Op = "ne"
	Gt  Op = "gt"
	Gte Op = "gte"
	Lt  Op = "lt"
	Lte Op = "lte"
	In  Op = "in"
)

// Filter is one predicate; all filters in a Query must match.
type Filter struct {
	Field string
	Op    Op
	Value any
}

// Where builds a Filter.
func Where(field string, op Op, value any) Filter {
	return Filter{Field: field, Op: op, Value: value}
}

// Sort orders results by Field.
type Sort struct {
	Field string
	Desc  bool
}

// Asc and Desc build sort keys.
func Asc(field string) Sort  { return Sort{Field: field} }
func Desc(field string) Sort { return Sort{Field: field, Desc: true} }

// Query selects documents from a collection. Zero Limit means no limit.
type Query struct {
	Filters []Filter
	Sort    []Sort
	Limit   int
}

// Store is implemented by Mongo and Memory.
type Store interface {
	// Get returns the document with id, or ErrNotFound.
	Get(ctx context.Context, collection, id string) (Document, error)
	// List returns the documents matching q, re-queried on each call.
	List(ctx context.Context, collection string, q Query) ([]Document, error)
	// Create inserts fields under a new id and stamps createdAt/updatedAt.
	Create(ctx context.Context, collection string, fields Document) (string, error)
	// Set writes fields under a caller-chosen id, inserting when absent.
	// createdAt is stamped on insert only; updatedAt always.
	Set(ctx context.Context, collection, id string, fields Document) error
	// Update sets fields on an existing document and stamps updatedAt.
	// A nil value removes the field.
	Update(ctx context.Context, collection, id string, fields Document) error
	// Delete removes the document, or returns ErrNotFound.
	Delete(ctx context.Context, collection, id string) error
}

// Now returns the store's notion of the current instant, truncated to the
// millisecond precision the backends persist.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// FormatTime renders t in ISOLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Truncate(time.Millisecond).Format(ISOLayout)
}

// ParseTime accepts ISO-8601 timestamps with or without fractional seconds,
// and bare dates (taken as midnight UTC).
func ParseTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("not an ISO-8601 timestamp: %q", s)
}

// clean strips server-assigned keys from caller-supplied fields.
func clean(fields Document) Document {
	out := make(Document, len(fields))
	for k, v := range fields {
		switch k {
		case FieldID, "_id", FieldCreatedAt, FieldUpdatedAt:
			continue
		}
		out[k] = v
	}
	return out
}

// plain converts driver values into plain Go values: nested documents become
// map[string]any, arrays []any and datetimes ISO strings.
func plain(v any) any {
	switch x := v.(type) {
	case bson.M:
		return plainMap(map[string]any(x))
	case map[string]any:
		return plainMap(x)
	case Document:
		return plainMap(map[string]any(x))
	case bson.D:
		m := make(map[string]any, len(x))
		for _, e := range x {
			m[e.Key] = plain(e.Value)
		}
		return m
	case bson.A:
		out := make([]any, len(x))
		for i := range x {
			out[i] = plain(x[i])
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = plain(x[i])
		}
		return out
	case primitive.DateTime:
		return FormatTime(x.Time())
	case time.Time:
		return FormatTime(x)
	case *time.Time:
		if x == nil {
			return nil
		}
		return FormatTime(*x)
	case primitive.ObjectID:
		return x.Hex()
	default:
		return v
	}
}

func plainMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = plain(v)
	}
	return out
}

// toDocument converts a stored record to a Document, exposing _id as id.
func toDocument(raw map[string]any) Document {
	doc := Document(plainMap(raw))
	if id, ok := doc["_id"]; ok {
		doc[FieldID] = fmt.Sprint(id)
		delete(doc, "_id")
	}
	return doc
}

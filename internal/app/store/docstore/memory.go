package docstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-process Store. It follows the Mongo implementation's
// semantics (ObjectID-style ids, missing fields sort first) and is used by
// tests and for local development without a database.
type Memory struct {
	mu    sync.RWMutex
	colls map[string]map[string]map[string]any
	now   func() time.Time
}

// NewMemory returns an empty store using the wall clock.
func NewMemory() *Memory {
	return &Memory{colls: map[string]map[string]map[string]any{}, now: Now}
}

// SetClock replaces the clock used for timestamps.
func (m *Memory) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = func() time.Time { return now().UTC().Truncate(time.Millisecond) }
}

func (m *Memory) coll(name string) map[string]map[string]any {
	c, ok := m.colls[name]
	if !ok {
		c = map[string]map[string]any{}
		m.colls[name] = c
	}
	return c
}

func (m *Memory) Get(ctx context.Context, collection, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.colls[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return toDocument(raw), nil
}

func (m *Memory) List(ctx context.Context, collection string, q Query) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	var matched []map[string]any
	for _, raw := range m.colls[collection] {
		if matchAll(raw, q.Filters) {
			matched = append(matched, raw)
		}
	}
	m.mu.RUnlock()

	// Map iteration order is random; fall back to _id so results are stable.
	keys := append(append([]Sort{}, q.Sort...), Asc("_id"))
	sort.SliceStable(matched, func(i, j int) bool {
		for _, s := range keys {
			c := compareValues(matched[i][mongoField(s.Field)], matched[j][mongoField(s.Field)])
			if c == 0 {
				continue
			}
			if s.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})

	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	out := make([]Document, 0, len(matched))
	for _, raw := range matched {
		out = append(out, toDocument(raw))
	}
	return out, nil
}

func (m *Memory) Create(ctx context.Context, collection string, fields Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	id := primitive.NewObjectID().Hex()
	raw := canonMap(clean(fields))
	raw["_id"] = id
	raw[FieldCreatedAt] = now
	raw[FieldUpdatedAt] = now
	m.coll(collection)[id] = raw
	return id, nil
}

func (m *Memory) Set(ctx context.Context, collection, id string, fields Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	c := m.coll(collection)
	raw, ok := c[id]
	if !ok {
		raw = map[string]any{"_id": id, FieldCreatedAt: now}
		c[id] = raw
	}
	apply(raw, clean(fields))
	raw[FieldUpdatedAt] = now
	return nil
}

func (m *Memory) Update(ctx context.Context, collection, id string, fields Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok := m.colls[collection][id]
	if !ok {
		return ErrNotFound
	}
	apply(raw, clean(fields))
	raw[FieldUpdatedAt] = m.now()
	return nil
}

func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.colls[collection][id]; !ok {
		return ErrNotFound
	}
	delete(m.colls[collection], id)
	return nil
}

func apply(raw map[string]any, fields Document) {
	for k, v := range fields {
		if v == nil {
			delete(raw, k)
			continue
		}
		raw[k] = canon(v)
	}
}

// canon converts a value to the representation Memory stores: times as UTC
// time.Time at millisecond precision, documents as map[string]any, arrays as
// []any.
func canon(v any) any {
	switch x := v.(type) {
	case time.Time:
		return x.UTC().Truncate(time.Millisecond)
	case *time.Time:
		if x == nil {
			return nil
		}
		return x.UTC().Truncate(time.Millisecond)
	case primitive.DateTime:
		return x.Time().UTC()
	case Document:
		return canonMap(x)
	case map[string]any:
		return canonMap(x)
	case bson.M:
		return canonMap(x)
	case bson.D:
		out := make(map[string]any, len(x))
		for _, e := range x {
			out[e.Key] = canon(e.Value)
		}
		return out
	case bson.A:
		return canonSlice([]any(x))
	case []any:
		return canonSlice(x)
	case []string:
		out := make([]any, len(x))
		for i, s := range x {
			out[i] = s
		}
		return out
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case float32:
		return float64(x)
	default:
		return v
	}
}

func canonMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if v == nil {
			continue
		}
		out[k] = canon(v)
	}
	return out
}

func canonSlice(s []any) []any {
	out := make([]any, len(s))
	for i := range s {
		out[i] = canon(s[i])
	}
	return out
}

func matchAll(raw map[string]any, filters []Filter) bool {
	for _, f := range filters {
		if !match(raw, f) {
			return false
		}
	}
	return true
}

func match(raw map[string]any, f Filter) bool {
	got, present := raw[mongoField(f.Field)]
	want := canon(f.Value)

	switch f.Op {
	case Eq, "":
		if !present {
			return want == nil
		}
		return equalValues(got, want)
	case Ne:
		if !present {
			return want != nil
		}
		return !equalValues(got, want)
	case In:
		list, ok := want.([]any)
		if !ok || !present {
			return false
		}
		for _, w := range list {
			if equalValues(got, w) {
				return true
			}
		}
		return false
	}

	// Range comparisons only match values of the same type, as in MongoDB.
	if !present || typeRank(got) != typeRank(want) {
		return false
	}
	c := compareValues(got, want)
	switch f.Op {
	case Gt:
		return c > 0
	case Gte:
		return c >= 0
	case Lt:
		return c < 0
	case Lte:
		return c <= 0
	}
	return false
}

func equalValues(a, b any) bool {
	// An array field matches a scalar equal to any of its elements.
	if arr, ok := a.([]any); ok {
		if _, bArr := b.([]any); !bArr {
			for _, el := range arr {
				if equalValues(el, b) {
					return true
				}
			}
			return false
		}
	}
	return typeRank(a) == typeRank(b) && compareValues(a, b) == 0
}

func typeRank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case int64, float64, uint, uint64, int8, int16, uint8, uint16, uint32:
		return 1
	case string:
		return 2
	case map[string]any:
		return 3
	case []any:
		return 4
	case bool:
		return 5
	case time.Time:
		return 6
	default:
		return 7
	}
}

// compareValues orders values the way MongoDB's BSON comparison does: by type
// first, then by value.
func compareValues(a, b any) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		return ra - rb
	}
	switch x := a.(type) {
	case string:
		return strings.Compare(x, b.(string))
	case bool:
		y := b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	case time.Time:
		return x.Compare(b.(time.Time))
	case nil:
		return 0
	}
	if ra == 1 {
		fa, fb := toFloat(a), toFloat(b)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) float64 {
	switch x := v.(type) {
	case int64:
		return float64(x)
	case float64:
		return x
	case uint:
		return float64(x)
	case uint64:
		return float64(x)
	case int8:
		return float64(x)
	case int16:
		return float64(x)
	case uint8:
		return float64(x)
	case uint16:
		return float64(x)
	case uint32:
		return float64(x)
	}
	return 0
}

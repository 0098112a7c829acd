package crud

import (
	"encoding/json"
	"fmt"

	"github.com/ihsb/ihsbsite/internal/app/store/docstore"
	"github.com/ihsb/ihsbsite/internal/app/system/apperr"
	"go.mongodb.org/mongo-driver/bson"
)

// serverKeys are assigned by the store or the repository, never by callers.
var serverKeys = []string{"id", "_id", "createdAt", "updatedAt", "createdBy", "updatedBy"}

// Patch is a partial update: the JSON fields to change. A null value clears
// the field.
type Patch map[string]json.RawMessage

// toDoc converts an entity to store fields, dropping server keys and storing
// the schema's time fields natively.
func toDoc[T any](v T, timeFields []string) (docstore.Document, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "encode record")
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "encode record")
	}
	doc := docstore.Document(m)
	for _, k := range serverKeys {
		delete(doc, k)
	}
	for _, f := range timeFields {
		s, _ := doc[f].(string)
		if s == "" {
			delete(doc, f)
			continue
		}
		t, err := docstore.ParseTime(s)
		if err != nil {
			return nil, apperr.Invalid(fmt.Sprintf("%s must be an ISO-8601 timestamp", f))
		}
		doc[f] = t
	}
	return doc, nil
}

// fromDoc decodes a store document into an entity.
func fromDoc[T any](doc docstore.Document) (T, error) {
	var out T
	raw, err := bson.Marshal(map[string]any(doc))
	if err != nil {
		return out, apperr.Wrap(apperr.Internal, err, "decode record")
	}
	if err := bson.Unmarshal(raw, &out); err != nil {
		return out, apperr.Wrap(apperr.Internal, err, "decode record")
	}
	return out, nil
}

// merge applies patch to cur through their JSON representation. Server keys
// in the patch are ignored.
func merge[T any](cur T, patch Patch) (T, error) {
	var out T
	base, err := jsonFields(cur)
	if err != nil {
		return out, err
	}
	for k, v := range patch {
		if isServerKey(k) {
			continue
		}
		base[k] = v
	}
	raw, err := json.Marshal(base)
	if err != nil {
		return out, apperr.Wrap(apperr.Internal, err, "merge patch")
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, apperr.Invalid("malformed field: " + typeErrorField(err))
	}
	return out, nil
}

func jsonFields(v any) (map[string]json.RawMessage, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "encode record")
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "encode record")
	}
	return m, nil
}

func typeErrorField(err error) string {
	if te, ok := err.(*json.UnmarshalTypeError); ok && te.Field != "" {
		return te.Field
	}
	return err.Error()
}

func isServerKey(k string) bool {
	for _, s := range serverKeys {
		if k == s {
			return true
		}
	}
	return false
}

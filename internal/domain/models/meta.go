// Package models holds the content entities stored by the site.
//
// Field names are identical in BSON and JSON so a record read from the store
// can be returned to clients without remapping. Timestamps are ISO-8601
// strings; the store converts native datetimes on read.
package models

// Meta carries the store-assigned identity and attribution fields shared by
// every content entity.
type Meta struct {
	ID        string `bson:"id,omitempty" json:"id,omitempty"`
	CreatedAt string `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt string `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
	CreatedBy string `bson:"createdBy,omitempty" json:"createdBy,omitempty"` // email of the creating admin
	UpdatedBy string `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"` // email of the last updater
}

// GetMeta exposes the embedded Meta to generic code.
func (m *Meta) GetMeta() *Meta { return m }

// DateLayout is the calendar-date format used by date fields.
const DateLayout = "2006-01-02"

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool { return &b }

// Redact clears the admin attribution fields before a record is served on a
// public endpoint.
func (m *Meta) Redact() { m.CreatedBy, m.UpdatedBy = "", "" }

// Redacted redacts every item in place. It never returns nil, so an empty
// result encodes as [].
func Redacted[T any, P interface {
	*T
	GetMeta() *Meta
}](items []T) []T {
	if items == nil {
		return []T{}
	}
	for i := range items {
		P(&items[i]).GetMeta().Redact()
	}
	return items
}

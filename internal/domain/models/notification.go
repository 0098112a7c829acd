package models

// Notification actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Notification is one entry in the dashboard activity feed. Entries are
// written once and never changed.
type Notification struct {
	ID             string `bson:"id,omitempty" json:"id"`
	Type           string `bson:"type" json:"type"`
	Action         string `bson:"action" json:"action"`
	Title          string `bson:"title" json:"title"`
	Description    string `bson:"description,omitempty" json:"description,omitempty"`
	ItemID         string `bson:"itemId" json:"itemId"`
	ItemHref       string `bson:"itemHref" json:"itemHref"`
	CreatedBy      string `bson:"createdBy" json:"createdBy"`
	CreatedByEmail string `bson:"createdByEmail" json:"createdByEmail"`
	CreatedByName  string `bson:"createdByName,omitempty" json:"createdByName,omitempty"`
	CreatedAt      string `bson:"createdAt,omitempty" json:"createdAt"`
}

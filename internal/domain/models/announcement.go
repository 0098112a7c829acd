package models

import "time"

// Announcement priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Announcement is a notice shown on the public site while live.
type Announcement struct {
	Meta `bson:",inline"`

	Title    string `bson:"title" json:"title" validate:"required,max=200"`
	Content  string `bson:"content" json:"content"`
	Image    string `bson:"image,omitempty" json:"image,omitempty"`
	Priority string `bson:"priority" json:"priority" validate:"required,oneof=low medium high"`
	Featured bool   `bson:"featured" json:"featured"`
	IsActive *bool  `bson:"isActive" json:"isActive"`

	// ExpiresAt is an ISO-8601 timestamp, stored natively.
	ExpiresAt string `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
}

// Live reports whether the announcement is active and not expired at now.
func (a Announcement) Live(now time.Time) bool {
	if a.IsActive == nil || !*a.IsActive {
		return false
	}
	if a.ExpiresAt == "" {
		return true
	}
	exp, err := time.Parse(time.RFC3339Nano, a.ExpiresAt)
	if err != nil {
		return false
	}
	return exp.After(now)
}

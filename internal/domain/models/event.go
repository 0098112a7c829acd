package models

// Event categories.
const (
	EventAcademic  = "academic"
	EventSports    = "sports"
	EventCultural  = "cultural"
	EventAdmission = "admission"
	EventOther     = "other"
)

// Event is a dated school event. RegistrationURL is kept only while
// RegistrationRequired is set.
type Event struct {
	Meta `bson:",inline"`

	Title       string `bson:"title" json:"title" validate:"required,max=200"`
	Description string `bson:"description" json:"description"`
	Date        string `bson:"date" json:"date" validate:"required,datetime=2006-01-02"`
	Time        string `bson:"time,omitempty" json:"time,omitempty"`
	Location    string `bson:"location,omitempty" json:"location,omitempty"`
	Image       string `bson:"image,omitempty" json:"image,omitempty"`
	Category    string `bson:"category" json:"category" validate:"required,oneof=academic sports cultural admission other"`
	Featured    bool   `bson:"featured" json:"featured"`

	RegistrationRequired bool   `bson:"registrationRequired" json:"registrationRequired"`
	RegistrationURL      string `bson:"registrationUrl,omitempty" json:"registrationUrl,omitempty" validate:"omitempty,url"`
}

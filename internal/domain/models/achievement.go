package models

// Sports and placements accepted on a SportsAchievement.
var (
	Sports     = []string{"Football", "Basketball", "Badminton", "Chess", "Events"}
	Placements = []string{"Champion", "Runner-up", "Participant", "Award"}
)

// SportsAchievement is looked up publicly by Slug, which is unique and
// fixed once created.
type SportsAchievement struct {
	Meta `bson:",inline"`

	Slug            string   `bson:"slug" json:"slug" validate:"required,slug,max=120"`
	Title           string   `bson:"title" json:"title" validate:"required,max=200"`
	Sport           string   `bson:"sport" json:"sport" validate:"required,oneof=Football Basketball Badminton Chess Events"`
	Placement       string   `bson:"placement" json:"placement" validate:"required,oneof=Champion Runner-up Participant Award"`
	Description     string   `bson:"description" json:"description"`
	Date            string   `bson:"date" json:"date" validate:"required,datetime=2006-01-02"`
	Image           string   `bson:"image" json:"image"`
	LongDescription string   `bson:"longDescription,omitempty" json:"longDescription,omitempty"`
	Photos          []string `bson:"photos,omitempty" json:"photos,omitempty"`
	Location        string   `bson:"location,omitempty" json:"location,omitempty"`
}

// AcademicAchievement records a student's exam result.
type AcademicAchievement struct {
	Meta `bson:",inline"`

	Name    string `bson:"name" json:"name" validate:"required,max=120"`
	Result  string `bson:"result" json:"result" validate:"required,max=120"`
	Year    string `bson:"year" json:"year" validate:"required,len=4,numeric"`
	Session string `bson:"session" json:"session" validate:"required,max=60"`
	Image   string `bson:"image,omitempty" json:"image,omitempty"`
}

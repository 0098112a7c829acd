package models

// FeaturedAlumnus is a graduate profiled on the alumni page.
type FeaturedAlumnus struct {
	Meta `bson:",inline"`

	Name           string `bson:"name" json:"name" validate:"required,max=120"`
	Description    string `bson:"description" json:"description"`
	Achievement    string `bson:"achievement" json:"achievement" validate:"required,max=300"`
	GraduationYear string `bson:"graduationYear" json:"graduationYear" validate:"required,len=4,numeric"`
	ImageURL       string `bson:"imageUrl" json:"imageUrl"`
	Email          string `bson:"email,omitempty" json:"email,omitempty" validate:"omitempty,email"`
	LinkedIn       string `bson:"linkedin,omitempty" json:"linkedin,omitempty" validate:"omitempty,url"`
	Company        string `bson:"company,omitempty" json:"company,omitempty"`
	Location       string `bson:"location,omitempty" json:"location,omitempty"`
	Featured       bool   `bson:"featured" json:"featured"`
}

// AlumniStory is a long-form alumni article, public once published.
type AlumniStory struct {
	Meta `bson:",inline"`

	Title      string `bson:"title" json:"title" validate:"required,max=200"`
	Excerpt    string `bson:"excerpt" json:"excerpt"`
	Content    string `bson:"content" json:"content"`
	Author     string `bson:"author" json:"author" validate:"required,max=120"`
	AuthorRole string `bson:"authorRole,omitempty" json:"authorRole,omitempty"`
	ImageURL   string `bson:"imageUrl" json:"imageUrl"`
	Date       string `bson:"date" json:"date" validate:"required,datetime=2006-01-02"`
	Published  bool   `bson:"published" json:"published"`
	Featured   bool   `bson:"featured" json:"featured"`
}

// AlumniYearStats is the graduate count shown for one year. Count is free
// text ("450+") when entered by hand and a number when AutoCalculated.
type AlumniYearStats struct {
	Meta `bson:",inline"`

	Year           string `bson:"year" json:"year" validate:"required,len=4,numeric"`
	Count          string `bson:"count" json:"count" validate:"required,max=20"`
	AutoCalculated bool   `bson:"autoCalculated" json:"autoCalculated"`
}

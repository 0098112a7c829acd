package models

// News categories.
const (
	NewsSports  = "sports"
	NewsNews    = "news"
	NewsGeneral = "general"
)

// NewsItem is a dated news post with an ordered photo gallery.
type NewsItem struct {
	Meta `bson:",inline"`

	Title       string   `bson:"title" json:"title" validate:"required,max=200"`
	Description string   `bson:"description" json:"description"`
	Photos      []string `bson:"photos" json:"photos"`
	Category    string   `bson:"category" json:"category" validate:"required,oneof=sports news general"`
	Date        string   `bson:"date" json:"date" validate:"required,datetime=2006-01-02"`
}

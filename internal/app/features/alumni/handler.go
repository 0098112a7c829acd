// internal/app/features/alumni/handler.go
package alumni

import (
	alumnistore "github.com/ihsb/ihsbsite/internal/app/store/alumni"
	"github.com/ihsb/ihsbsite/internal/app/system/apperr"
	"github.com/ihsb/ihsbsite/internal/app/system/notify"
	"go.uber.org/zap"
)

var (
	errAlumnusNotFound = apperr.Missing("alumnus not found")
	errStoryNotFound   = apperr.Missing("story not found")
)

// Handler owns the featured alumni, alumni stories and year stats
// endpoints.
type Handler struct {
	Featured  *alumnistore.FeaturedStore
	Stories   *alumnistore.StoryStore
	YearStats *alumnistore.YearStatsStore
	Notify    *notify.Recorder
	Log       *zap.Logger
}

func NewHandler(featured *alumnistore.FeaturedStore, stories *alumnistore.StoryStore, stats *alumnistore.YearStatsStore, rec *notify.Recorder, logger *zap.Logger) *Handler {
	return &Handler{
		Featured:  featured,
		Stories:   stories,
		YearStats: stats,
		Notify:    rec,
		Log:       logger,
	}
}

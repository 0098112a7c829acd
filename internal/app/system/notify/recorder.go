// internal/app/system/notify/recorder.go
package notify

import (
	"context"

	notificationstore "github.com/ihsb/ihsbsite/internal/app/store/notifications"
	"github.com/ihsb/ihsbsite/internal/app/system/timeouts"
	"github.com/ihsb/ihsbsite/internal/domain/models"
	"go.uber.org/zap"
)

const (
	DefaultLimit = 20
	MaxLimit     = 50
)

// Entry describes one content mutation.
type Entry struct {
	Type        string // "event", "news", ...
	Action      string // models.ActionCreated etc.
	Title       string
	Description string
	ItemID      string
	ItemHref    string

	ActorID    string
	ActorEmail string
	ActorName  string
}

// Recorder writes the activity feed. Failures are logged and dropped so a
// mutation never fails because its notification could not be written.
type Recorder struct {
	store  *notificationstore.Store
	zapLog *zap.Logger
}

func New(store *notificationstore.Store, zapLog *zap.Logger) *Recorder {
	return &Recorder{store: store, zapLog: zapLog}
}

// Record writes e. It runs on a context detached from ctx's cancellation so
// a client disconnect does not drop the entry. A nil Recorder is a no-op.
func (r *Recorder) Record(ctx context.Context, e Entry) {
	if r == nil {
		return
	}

	dctx, cancel := timeouts.Detached(ctx, timeouts.Notify(), r.zapLog, "notification insert")
	defer cancel()

	_, err := r.store.Insert(dctx, models.Notification{
		Type:           e.Type,
		Action:         e.Action,
		Title:          e.Title,
		Description:    e.Description,
		ItemID:         e.ItemID,
		ItemHref:       e.ItemHref,
		CreatedBy:      e.ActorID,
		CreatedByEmail: e.ActorEmail,
		CreatedByName:  e.ActorName,
	})
	if err != nil {
		r.zapLog.Error("failed to record notification",
			zap.Error(err),
			zap.String("type", e.Type),
			zap.String("action", e.Action),
			zap.String("item_id", e.ItemID))
		return
	}
	r.zapLog.Debug("notification recorded",
		zap.String("type", e.Type),
		zap.String("action", e.Action),
		zap.String("item_id", e.ItemID),
		zap.String("actor", e.ActorEmail))
}

// Recent returns the newest entries. limit <= 0 means DefaultLimit; larger
// values are capped at MaxLimit.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]models.Notification, error) {
	return r.store.Latest(ctx, ClampLimit(limit))
}

// ClampLimit applies the feed's default and cap.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

package health

import (
	"context"
	"net/http"

	"github.com/ihsb/ihsbsite/internal/app/system/jsonresp"
	"github.com/ihsb/ihsbsite/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// PingFunc checks the database.
type PingFunc func(ctx context.Context) error

// Handler holds dependencies needed for health checks.
type Handler struct {
	Ping    PingFunc
	Backend string
	Log     *zap.Logger
}

// NewHandler constructs a health Handler. A nil ping reports the backend
// as always connected, as for the in-memory store.
func NewHandler(ping PingFunc, backend string, logger *zap.Logger) *Handler {
	return &Handler{Ping: ping, Backend: backend, Log: logger}
}

// MongoPing pings the primary.
func MongoPing(client *mongo.Client) PingFunc {
	return func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}
}

type healthResponse struct {
	Status   string `json:"status"`
	Backend  string `json:"backend"`
	Database string `json:"database"`
	Message  string `json:"message,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "backend":"mongo", "database":"connected" }
//
// On DB failure: 503 and
//
//	{ "status":"error", "backend":"mongo", "database":"disconnected", "message":"Database unavailable" }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Backend: h.Backend, Database: "connected"}

	if h.Ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
		defer cancel()
		if err := h.Ping(ctx); err != nil {
			h.Log.Error("health-check: database ping failed", zap.Error(err))
			resp.Status = "error"
			resp.Database = "disconnected"
			resp.Message = "Database unavailable"
			jsonresp.Write(w, http.StatusServiceUnavailable, resp)
			return
		}
	}

	jsonresp.OK(w, resp)
}

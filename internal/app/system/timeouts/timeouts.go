// Package timeouts holds the durations handed to transports and detached
// side calls.
//
// Store calls are bounded by the mongo client's operation timeout and
// assistant calls by their HTTP client; handlers do not stack another
// deadline on top. Notification writes outlive the request and run on a
// detached context bounded by Notify.
//
// Values are configured once at startup; zero values keep the defaults.
package timeouts

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Defaults used when Configure is not called.
const (
	DefaultPing     = 2 * time.Second
	DefaultStore    = 10 * time.Second
	DefaultUpstream = 30 * time.Second
	DefaultNotify   = 5 * time.Second
)

var (
	mu       sync.RWMutex
	ping     = DefaultPing
	store    = DefaultStore
	upstream = DefaultUpstream
	notify   = DefaultNotify
)

// Config holds timeout values. Zero fields are ignored.
type Config struct {
	Ping     time.Duration
	Store    time.Duration
	Upstream time.Duration
	Notify   time.Duration
}

// Configure overrides the non-zero values in cfg.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Store > 0 {
		store = cfg.Store
	}
	if cfg.Upstream > 0 {
		upstream = cfg.Upstream
	}
	if cfg.Notify > 0 {
		notify = cfg.Notify
	}
}

// Reset restores the defaults. Useful for tests.
func Reset() {
	Configure(Config{Ping: DefaultPing, Store: DefaultStore, Upstream: DefaultUpstream, Notify: DefaultNotify})
}

// Current returns the active configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{Ping: ping, Store: store, Upstream: upstream, Notify: notify}
}

// Ping bounds health-check pings.
func Ping() time.Duration { return Current().Ping }

// Store is the mongo client's per-operation timeout.
func Store() time.Duration { return Current().Store }

// Upstream is the HTTP client timeout for writing-assistant calls.
func Upstream() time.Duration { return Current().Upstream }

// Notify bounds a detached notification write.
func Notify() time.Duration { return Current().Notify }

// Detached returns a context that keeps parent's values but not its
// cancellation, bounded by timeout. A warning is logged on cancel if the
// deadline was hit.
func Detached(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout))
		}
		cancel()
	}
}

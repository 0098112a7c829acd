package ratelimit

import (
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestSweep_DropsIdleBuckets(t *testing.T) {
	l := New(rate.Every(time.Second), 1)
	defer l.Stop()

	base := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return base }
	l.Allow("old")
	l.now = func() time.Time { return base.Add(l.idle - time.Second) }
	l.Allow("fresh")

	l.now = func() time.Time { return base.Add(l.idle + time.Second) }
	l.sweep()

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.buckets["old"]; ok {
		t.Error("idle bucket kept")
	}
	if _, ok := l.buckets["fresh"]; !ok {
		t.Error("recent bucket dropped")
	}
}

func TestStop_EndsCleanup(t *testing.T) {
	l := New(rate.Every(time.Second), 1)
	l.Stop()
	l.Stop()

	select {
	case <-l.stop:
	case <-time.After(time.Second):
		t.Fatal("stop channel not closed")
	}
	if !l.Allow("k") {
		t.Error("stopped limiter should still allow")
	}
}

package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ihsb/ihsbsite/internal/app/system/apperr"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperr.Kind
	}{
		{"plain", errors.New("boom"), apperr.Internal},
		{"direct", apperr.Invalid("title is required"), apperr.Validation},
		{"wrapped", fmt.Errorf("create: %w", apperr.Missing("event not found")), apperr.NotFound},
		{"upstream", apperr.Wrap(apperr.Upstream, errors.New("dial tcp"), "mongo insert"), apperr.Upstream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := apperr.KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrap_Nil(t *testing.T) {
	if err := apperr.Wrap(apperr.Upstream, nil, "noop"); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
}

func TestSentinel_Is(t *testing.T) {
	sentinel := apperr.Missing("document not found")
	err := fmt.Errorf("get events/abc: %w", apperr.Missing("document not found"))
	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should match a sentinel with the same kind and message")
	}
	if errors.Is(err, apperr.Missing("other")) {
		t.Error("errors.Is should not match a different message")
	}
}

func TestMessage(t *testing.T) {
	if got := apperr.Message(errors.New("secret dsn leaked")); got != "internal error" {
		t.Errorf("Message(plain) = %q", got)
	}
	if got := apperr.Message(apperr.Invalid("date is required")); got != "date is required" {
		t.Errorf("Message(validation) = %q", got)
	}
}

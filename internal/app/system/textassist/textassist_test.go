package textassist_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ihsb/ihsbsite/internal/app/system/apperr"
	"github.com/ihsb/ihsbsite/internal/app/system/limits"
	"github.com/ihsb/ihsbsite/internal/app/system/textassist"
)

type fakeCompleter struct {
	gotSystem, gotPrompt string
	out                  string
	err                  error
}

func (f *fakeCompleter) Complete(_ context.Context, system, prompt string) (string, error) {
	f.gotSystem, f.gotPrompt = system, prompt
	return f.out, f.err
}

func TestImprove(t *testing.T) {
	fc := &fakeCompleter{out: "  Sports day is on Friday.\x00\x07\n"}
	a := textassist.New(fc)

	got, err := a.Improve(context.Background(), "sports day\x1b friday\tok", "event")
	if err != nil {
		t.Fatalf("Improve: %v", err)
	}
	if got != "Sports day is on Friday." {
		t.Errorf("got %q", got)
	}
	if fc.gotPrompt != "sports day friday\tok" {
		t.Errorf("prompt = %q, control chars should be stripped", fc.gotPrompt)
	}
	if !strings.Contains(fc.gotSystem, "event description") {
		t.Errorf("system prompt missing purpose: %q", fc.gotSystem)
	}
}

func TestImprove_Errors(t *testing.T) {
	tests := []struct {
		name string
		a    *textassist.Assistant
		text string
		kind apperr.Kind
	}{
		{"empty", textassist.New(&fakeCompleter{out: "x"}), " \x01 ", apperr.Validation},
		{"too long", textassist.New(&fakeCompleter{out: "x"}), strings.Repeat("a", limits.MaxAssistInput+1), apperr.Validation},
		{"not configured", textassist.New(nil), "hello", apperr.Upstream},
		{"model error", textassist.New(&fakeCompleter{err: errors.New("quota")}), "hello", apperr.Upstream},
		{"model empty", textassist.New(&fakeCompleter{out: "  "}), "hello", apperr.Upstream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.a.Improve(context.Background(), tt.text, "")
			if !apperr.Is(err, tt.kind) {
				t.Errorf("err = %v, want %s", err, tt.kind)
			}
		})
	}
}

func TestImprove_AcceptsMaxInput(t *testing.T) {
	a := textassist.New(&fakeCompleter{out: "ok"})
	if _, err := a.Improve(context.Background(), strings.Repeat("ব", limits.MaxAssistInput), ""); err != nil {
		t.Errorf("input at the limit should pass: %v", err)
	}
}

func TestImprove_TruncatesOutput(t *testing.T) {
	a := textassist.New(&fakeCompleter{out: strings.Repeat("é", limits.MaxAssistOutput+100)})
	got, err := a.Improve(context.Background(), "hello", "news")
	if err != nil {
		t.Fatal(err)
	}
	if n := utf8.RuneCountInString(got); n != limits.MaxAssistOutput {
		t.Errorf("output length = %d, want %d", n, limits.MaxAssistOutput)
	}
}

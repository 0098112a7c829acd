// Package textassist rewrites admin-entered copy with a language model.
package textassist

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ihsb/ihsbsite/internal/app/system/apperr"
	"github.com/ihsb/ihsbsite/internal/app/system/limits"
)

// Completer runs one prompt against a model.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

var (
	ErrEmpty         = apperr.Invalid("text is required")
	ErrTooLong       = apperr.Invalid(fmt.Sprintf("text must be at most %d characters", limits.MaxAssistInput))
	ErrNotConfigured = apperr.New(apperr.Upstream, "text assistant is not configured")
)

// Purposes adjust the instruction given to the model.
var purposes = map[string]string{
	"announcement": "a school announcement for parents and students",
	"event":        "a school event description",
	"news":         "a school news article",
	"achievement":  "a description of a student achievement",
	"story":        "an alumni story",
	"admission":    "admission information for prospective families",
	"general":      "text for the school website",
}

// Assistant improves text through a Completer.
type Assistant struct {
	c Completer
}

// New returns an Assistant. A nil Completer makes every call fail with
// ErrNotConfigured.
func New(c Completer) *Assistant {
	return &Assistant{c: c}
}

// Improve returns a polished version of text. Control characters other
// than tab, newline and carriage return are stripped from both the input
// and the model's answer; the answer is cut at limits.MaxAssistOutput
// characters.
func (a *Assistant) Improve(ctx context.Context, text, purpose string) (string, error) {
	text = strings.TrimSpace(StripControl(text))
	if text == "" {
		return "", ErrEmpty
	}
	if utf8.RuneCountInString(text) > limits.MaxAssistInput {
		return "", ErrTooLong
	}
	if a == nil || a.c == nil {
		return "", ErrNotConfigured
	}

	kind, ok := purposes[strings.ToLower(strings.TrimSpace(purpose))]
	if !ok {
		kind = purposes["general"]
	}
	system := "You are an editor for the IHSB school website. Improve the clarity, grammar and tone of " +
		kind + ". Keep the meaning, facts, names, dates and language of the original. " +
		"Return only the improved text with no preamble or commentary."

	out, err := a.c.Complete(ctx, system, text)
	if err != nil {
		return "", apperr.Wrap(apperr.Upstream, err, "text completion failed")
	}
	out = strings.TrimSpace(StripControl(out))
	if out == "" {
		return "", apperr.New(apperr.Upstream, "text completion returned no text")
	}
	return Truncate(out, limits.MaxAssistOutput), nil
}

// StripControl removes control characters except \t, \n and \r.
func StripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// Truncate cuts s to at most n characters.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

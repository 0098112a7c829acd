// Package jsonresp writes the API's JSON envelopes.
//
// Success bodies are JSON objects keyed by resource name ({"event": {...}},
// {"events": [...]}); failures are {"error": "..."} with a status derived from
// the error's apperr.Kind.
package jsonresp

import (
	"encoding/json"
	"net/http"

	"github.com/ihsb/ihsbsite/internal/app/system/apperr"
	"go.uber.org/zap"
)

// M is shorthand for a response object.
type M map[string]any

// Write encodes v as JSON with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes a 200 response.
func OK(w http.ResponseWriter, v any) {
	Write(w, http.StatusOK, v)
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.Unauthenticated:
		return http.StatusUnauthorized
	case apperr.Forbidden:
		return http.StatusForbidden
	case apperr.Validation:
		return http.StatusBadRequest
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.TooLarge:
		return http.StatusRequestEntityTooLarge
	case apperr.RateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as {"error": msg}. Upstream and Internal errors are logged
// with their cause and answered with a generic message.
func Error(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	kind := apperr.KindOf(err)
	status := StatusFor(kind)
	msg := apperr.Message(err)

	if status == http.StatusInternalServerError {
		if log != nil {
			log.Error("request failed",
				zap.Error(err),
				zap.String("kind", string(kind)),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path))
		}
		msg = "internal server error"
	}

	Write(w, status, M{"error": msg})
}

// Package formutil reads request input for the JSON API: bodies are size
// capped and decoded strictly enough to report malformed input as a 400.
package formutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/ihsb/ihsbsite/internal/app/system/apperr"
	"github.com/ihsb/ihsbsite/internal/app/system/limits"
)

var ErrEmptyBody = apperr.Invalid("request body is required")

// DecodeJSON reads r's body into v. Bodies over limits.MaxJSONBody are
// TooLarge; anything that is not a JSON object of the right shape is a
// Validation error.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, limits.MaxJSONBody)
	dec := json.NewDecoder(body)

	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		var typeErr *json.UnmarshalTypeError
		var syntaxErr *json.SyntaxError
		switch {
		case errors.Is(err, io.EOF):
			return ErrEmptyBody
		case errors.As(err, &maxErr):
			return apperr.Newf(apperr.TooLarge, "request body exceeds %d bytes", maxErr.Limit)
		case errors.As(err, &typeErr):
			if typeErr.Field != "" {
				return apperr.Invalid("malformed field: " + typeErr.Field)
			}
			return apperr.Invalid("request body must be a JSON object")
		case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
			return apperr.Invalid("malformed JSON")
		default:
			return apperr.Wrap(apperr.Validation, err, "malformed request body")
		}
	}
	if dec.More() {
		return apperr.Invalid("request body must contain a single JSON object")
	}
	return nil
}

// QueryInt returns the integer query parameter key, or def when it is
// absent. A non-numeric value is a Validation error.
func QueryInt(r *http.Request, key string, def int) (int, error) {
	s := query.Get(r, key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperr.Invalid(fmt.Sprintf("%s must be a number", key))
	}
	return n, nil
}

// QueryBool reports whether key is "true" or "1".
func QueryBool(r *http.Request, key string) bool {
	switch query.Get(r, key) {
	case "true", "1":
		return true
	}
	return false
}

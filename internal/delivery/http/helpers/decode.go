package helpers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

// Client-facing messages for request body problems.
const (
	MsgInvalidJSON = "Invalid JSON in request body."
	MsgEmptyBody   = "Request body is empty."
	msgUnknownPfx  = "Unknown field in request body: "
)

// maxBodyBytes caps request bodies; RSVP payloads are a few dozen bytes.
const maxBodyBytes = 1 << 16

// Validator is implemented by request DTOs that support validation.
// Validate returns a slice of error messages; nil or empty means valid.
type Validator interface {
	Validate() []string
}

// DecodeAndValidate decodes the request body into dest and, if dest
// implements Validator, runs Validate(). Unknown fields are rejected and the
// body must hold exactly one JSON value. On failure it writes a 400 JSON
// error and returns false; callers should return immediately in that case.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			WriteDetail(w, http.StatusBadRequest, MsgEmptyBody)
			return false
		}
		if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
			WriteDetail(w, http.StatusBadRequest, msgUnknownPfx+field)
			return false
		}
		WriteDetail(w, http.StatusBadRequest, MsgInvalidJSON)
		return false
	}
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		WriteDetail(w, http.StatusBadRequest, MsgInvalidJSON)
		return false
	}
	if v, ok := dest.(Validator); ok {
		if errs := v.Validate(); len(errs) > 0 {
			WriteDetail(w, http.StatusBadRequest, strings.Join(errs, "; "))
			return false
		}
	}
	return true
}

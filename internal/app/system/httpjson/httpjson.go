// Package httpjson holds the JSON request/response plumbing shared by all
// API handlers: body decoding with limits, response writing, and the
// mapping from the application's error taxonomy to HTTP status codes.
package httpjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// maxBodyBytes caps JSON request bodies. File uploads use multipart
// limits instead and do not go through Decode.
const maxBodyBytes = 1 << 20 // 1 MB

// Decode reads a JSON request body into dst, rejecting unknown fields and
// oversized bodies.
func Decode(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// Write encodes v as the response body with the given status code.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the uniform JSON error envelope.
type errorBody struct {
	Error string `json:"error"`
}

// WriteError sends a JSON error body with the given status code.
func WriteError(w http.ResponseWriter, status int, msg string) {
	Write(w, status, errorBody{Error: msg})
}

// ValidationError marks a request rejected before any write occurred
// (missing or malformed required fields). Surfaced as 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// WriteTaxonomy maps an error to its HTTP status: ValidationError to 400,
// store not-found sentinels must be handled by the caller (they carry no
// type here), everything else is a persistence failure surfaced as 500
// with a generic message while the detail goes to the log only.
func WriteTaxonomy(w http.ResponseWriter, log *zap.Logger, operation string, err error) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		WriteError(w, http.StatusBadRequest, ve.Msg)
		return
	}
	if log != nil {
		log.Error(operation+" failed", zap.Error(err))
	}
	WriteError(w, http.StatusInternalServerError, "an internal error occurred")
}

// Package jsonio reads and writes the small JSON bodies of the API endpoints.
package jsonio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrTooLarge is returned by Decode when the body exceeds the limit.
var ErrTooLarge = errors.New("jsonio: request body too large")

// ErrMalformed is returned by Decode when the body is not valid JSON for v.
var ErrMalformed = errors.New("jsonio: malformed JSON body")

// Decode reads at most limit bytes of r.Body into v.
func Decode(w http.ResponseWriter, r *http.Request, limit int64, v any) error {
	if r.Body == nil {
		return ErrMalformed
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ErrTooLarge
		}
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	// Drain so an oversized tail is still detected.
	if _, err := io.Copy(io.Discard, r.Body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ErrTooLarge
		}
	}
	return nil
}

// Write encodes v with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes {"error": msg}.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]string{"error": msg})
}

// DecodeStatus maps a Decode error onto the response status.
func DecodeStatus(err error) int {
	if errors.Is(err, ErrTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error is a remote rejection: the service answered, but with a non-2xx
// status. The message is the server-provided error body when present.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// newError extracts the structured error message from a response body,
// falling back to a generic status description.
func newError(status int, body []byte) *Error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return &Error{Status: status, Message: payload.Error}
	}
	return &Error{Status: status, Message: fmt.Sprintf("server error (%d)", status)}
}

// StatusOf returns the HTTP status carried by err, or 0 when err is not a
// remote rejection.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsUnavailable reports whether err is the synthetic "service unavailable"
// outcome produced for connectivity failures.
func IsUnavailable(err error) bool {
	return StatusOf(err) == http.StatusServiceUnavailable
}

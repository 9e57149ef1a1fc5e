package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
)

var (
	// ErrNoToken is returned before any request when an endpoint needs a vendor session.
	ErrNoToken = errors.New("no vendor session")
	// ErrUnavailable is returned while the circuit breaker is open.
	ErrUnavailable = errors.New("api unavailable")
)

// Error is a non-2xx response from the API.
type Error struct {
	Status  int
	Method  string
	Path    string
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

func newError(method, path string, status int, body []byte) *Error {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		msg = strings.TrimSpace(payload.Message)
		if msg == "" {
			msg = strings.TrimSpace(payload.Error)
		}
	}
	return &Error{Status: status, Method: method, Path: path, Message: msg}
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 or 403 response.
func IsUnauthorized(err error) bool {
	s := StatusOf(err)
	return s == http.StatusUnauthorized || s == http.StatusForbidden
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// UserMessage returns the server-provided message when present, otherwise fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

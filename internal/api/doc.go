// Package api provides a typed HTTP client for the InLine waitlist backend.
//
// Every request carries a request id and is logged at debug level. A circuit
// breaker fails calls fast with ErrUnavailable after repeated transport or
// server errors. Non-2xx responses become *Error values whose Message is the
// backend's own text when it sent one.
package api

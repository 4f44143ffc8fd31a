package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrTransport    = errors.New("gateway: transport failure")
	ErrUnauthorized = errors.New("gateway: credential rejected")
	ErrDecode       = errors.New("gateway: malformed response")
)

// APIError is a request the server understood and refused, carrying the
// message from its {"error": "..."} envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway: %s (%d)", e.Message, e.StatusCode)
}

// Message returns the text to show a user for err: the server's own message
// for refused requests, fallback for everything else.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func IsValidation(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 &&
		apiErr.StatusCode != http.StatusUnauthorized
}

package client

import (
	"errors"
	"net/http"
)

// APIError is a non-2xx answer from the server. Message is the server's
// errorMessage, ready to show to the user.
type APIError struct {
	StatusCode int
	Message    string
	Details    map[string]string
}

func (e *APIError) Error() string {
	return e.Message
}

func IsNotFound(err error) bool { return HasStatusCode(err, http.StatusNotFound) }

func IsUnauthorized(err error) bool { return HasStatusCode(err, http.StatusUnauthorized) }

func IsForbidden(err error) bool { return HasStatusCode(err, http.StatusForbidden) }

// HasStatusCode reports whether err is an API error with the given status.
func HasStatusCode(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingToken is returned when a client is used without a credential.
var ErrMissingToken = errors.New("github: access token is required")

// APIError is a non-success response from the GitHub API.
type APIError struct {
	StatusCode int
	// Message is the "message" field of the GitHub error document, or the raw
	// body when the response is not JSON.
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: HTTP %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a 401 from GitHub.
func IsUnauthorized(err error) bool {
	return statusOf(err) == http.StatusUnauthorized
}

// IsForbidden reports whether err is a 403 from GitHub.
func IsForbidden(err error) bool {
	return statusOf(err) == http.StatusForbidden
}

// IsTimeout reports whether err comes from the per-call deadline.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

func statusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// isClientSide reports errors that say nothing about GitHub's health.
// They must not trip the circuit breaker.
func isClientSide(err error) bool {
	if err == nil {
		return true
	}
	code := statusOf(err)
	return code >= 400 && code < 500 && code != http.StatusTooManyRequests
}

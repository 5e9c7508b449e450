package indexing

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidNotificationType is returned for a change type other than
	// updated or deleted.
	ErrInvalidNotificationType = errors.New("indexing: notification type must be URL_UPDATED or URL_DELETED")
)

// APIError is a non-success response from the token endpoint or the
// Indexing API. Body is the remote response, verbatim.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("indexing: HTTP %d: %s", e.StatusCode, e.Body)
}

func isClientSide(err error) bool {
	if err == nil {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 && apiErr.StatusCode != http.StatusTooManyRequests
	}
	return false
}

// Package index submits published post URLs to the search-engine indexing API.
// It validates every URL against the site origin before any remote call and
// paces submissions serially to respect the API's rate limit.
package index

import "errors"

// Sentinel errors for indexing use case operations.
var (
	// ErrNotConfigured indicates that no service account is configured.
	ErrNotConfigured = errors.New("indexing is not configured")

	// ErrInvalidURL indicates that a URL is malformed or outside the site origin.
	// The returned error also wraps entity.ErrInvalidInput.
	ErrInvalidURL = errors.New("invalid indexing URL")
)

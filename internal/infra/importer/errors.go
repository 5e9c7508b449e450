package importer

import "errors"

// Sentinel errors for page imports.
var (
	// ErrInvalidURL indicates that the URL is malformed or uses a scheme other than http/https.
	ErrInvalidURL = errors.New("invalid import URL")

	// ErrPrivateIP indicates that the host resolves to a private, loopback or link-local address.
	ErrPrivateIP = errors.New("import URL resolves to a private address")

	// ErrTimeout indicates that the page did not load within the configured timeout.
	ErrTimeout = errors.New("import request timed out")

	// ErrBodyTooLarge indicates that the page exceeds the configured size limit.
	ErrBodyTooLarge = errors.New("import response body too large")

	// ErrTooManyRedirects indicates that the redirect limit was exceeded.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrNoContent indicates that no readable article was found on the page.
	ErrNoContent = errors.New("no readable content found")
)

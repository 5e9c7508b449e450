// Package post provides use cases for authoring blog posts.
// It owns the editing session over the post list, turns raw HTML (or Markdown)
// into posts through the metadata extractor, and persists the list through the
// content store.
package post

import "errors"

// Sentinel errors for post use case operations.
var (
	// ErrEmptyContent indicates that no HTML or Markdown was submitted.
	ErrEmptyContent = errors.New("post content is required")

	// ErrImportNotConfigured indicates that importing from URLs is disabled.
	ErrImportNotConfigured = errors.New("post import is not configured")
)

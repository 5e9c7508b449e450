package entity

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// maxURLLength defines the maximum allowed length for URLs to prevent DoS attacks.
const maxURLLength = 2048

// ValidateURL checks that rawURL is an absolute http or https URL with a host.
// Returns a ValidationError if the URL is invalid or empty.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "URL is required"}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "url", Message: "URL is invalid"}
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}

	return nil
}

// ValidateSiteURL checks that rawURL is a valid URL belonging to the site at origin.
// The check is a prefix match against the configured origin, so
// "https://adsnow.ro/blog/x" belongs to "https://adsnow.ro" but
// "https://adsnow.ro.evil.com" does not.
func ValidateSiteURL(rawURL, origin string) error {
	if err := ValidateURL(rawURL); err != nil {
		return err
	}
	origin = strings.TrimRight(origin, "/")
	if origin == "" {
		return &ValidationError{Field: "url", Message: "site origin is not configured"}
	}
	if rawURL != origin && !strings.HasPrefix(rawURL, origin+"/") {
		return &ValidationError{Field: "url", Message: fmt.Sprintf("URL must belong to %s", origin)}
	}
	return nil
}

// ValidatePost checks the invariants of a single post.
func ValidatePost(p Post) error {
	if p.ID <= 0 {
		return &ValidationError{Field: "id", Message: "must be positive"}
	}
	if strings.TrimSpace(p.Title) == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if !IsValidSlug(p.Slug) {
		return &ValidationError{Field: "slug", Message: fmt.Sprintf("invalid slug %q", p.Slug)}
	}
	if p.Date != "" {
		if _, err := time.Parse(DateLayout, p.Date); err != nil {
			return &ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"}
		}
	}
	return nil
}

// ValidatePosts validates every post and enforces id and slug uniqueness across the list.
func ValidatePosts(posts []Post) error {
	ids := make(map[int64]struct{}, len(posts))
	slugs := make(map[string]struct{}, len(posts))
	for _, p := range posts {
		if err := ValidatePost(p); err != nil {
			return fmt.Errorf("post %d: %w", p.ID, err)
		}
		if _, dup := ids[p.ID]; dup {
			return &ValidationError{Field: "id", Message: fmt.Sprintf("duplicate id %d", p.ID)}
		}
		ids[p.ID] = struct{}{}
		if _, dup := slugs[p.Slug]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateSlug, p.Slug)
		}
		slugs[p.Slug] = struct{}{}
	}
	return nil
}

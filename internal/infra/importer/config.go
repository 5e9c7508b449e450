package importer

import (
	"fmt"
	"time"

	"adsnow-blog/internal/resilience/retry"
)

// Config controls how pages are fetched for import.
type Config struct {
	// Timeout is the maximum duration of a single HTTP request.
	// Default: 10s
	Timeout time.Duration

	// MaxBodySize is the maximum response body size in bytes, enforced while reading.
	// Default: 5MB
	MaxBodySize int64

	// MaxRedirects is the maximum number of redirects to follow.
	// Each redirect target is validated like the original URL.
	// Default: 5
	MaxRedirects int

	// DenyPrivateIPs blocks URLs resolving to private/loopback/link-local IPs.
	// Should always be true in production.
	// Default: true
	DenyPrivateIPs bool

	// UserAgent identifies the importer to remote sites.
	UserAgent string

	// Retry controls retries of transient failures (5xx, 429, connection resets).
	Retry retry.Config
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:        10 * time.Second,
		MaxBodySize:    5 * 1024 * 1024,
		MaxRedirects:   5,
		DenyPrivateIPs: true,
		UserAgent:      "AdsNowBlogImporter/1.0",
		Retry:          retry.ImportFetchConfig(),
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	minBodySize := int64(1024)
	maxBodySize := int64(50 * 1024 * 1024)
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}
	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	return nil
}

// Package pagination slices in-memory lists into pages for the public read API.
package pagination

// Config holds pagination limits.
type Config struct {
	DefaultPage  int // Default page number (typically 1)
	DefaultLimit int // Default items per page
	MaxLimit     int // Maximum allowed items per page
}

// DefaultConfig returns page=1, limit=12, max=100.
// 12 matches the three-column blog grid.
func DefaultConfig() Config {
	return Config{
		DefaultPage:  1,
		DefaultLimit: 12,
		MaxLimit:     100,
	}
}

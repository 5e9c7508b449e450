package pagination

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ErrInvalidParams wraps every query parameter error.
var ErrInvalidParams = errors.New("invalid query parameter")

// Params is a 1-based page request.
type Params struct {
	Page  int
	Limit int
}

// ParseQueryParams reads ?page= and ?limit=. Absent values fall back to
// config; present ones must be positive and limit may not exceed MaxLimit.
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	q := r.URL.Query()
	page, err := queryInt(q, "page", config.DefaultPage)
	if err != nil {
		return Params{}, err
	}
	limit, err := queryInt(q, "limit", config.DefaultLimit)
	if err != nil {
		return Params{}, err
	}
	if limit > config.MaxLimit {
		return Params{}, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidParams, config.MaxLimit)
	}
	return Params{Page: page, Limit: limit}, nil
}

func queryInt(q url.Values, name string, fallback int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", ErrInvalidParams, name)
	}
	return n, nil
}

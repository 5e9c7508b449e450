// Package circuitbreaker stops calling a remote that keeps failing.
// It wraps github.com/sony/gobreaker with one preset per remote and exports
// the breaker state as a Prometheus gauge.
package circuitbreaker

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"adsnow-blog/internal/observability/metrics"
)

// Config holds the configuration for a circuit breaker.
type Config struct {
	// Name labels the log lines and the state gauge.
	Name string

	// MaxRequests is the number of trial calls let through while half-open.
	MaxRequests uint32

	// Interval clears the closed-state counts. Zero never clears them.
	Interval time.Duration

	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration

	// FailureThreshold is the failure ratio that opens the breaker, e.g. 0.6.
	FailureThreshold float64

	// MinRequests is the number of calls needed before the ratio is checked.
	MinRequests uint32

	// IsSuccessful classifies errors returned through the breaker.
	// Nil counts every non-nil error as a failure.
	IsSuccessful func(err error) bool
}

// DefaultConfig returns a general-purpose configuration.
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// GitHubAPIConfig is the preset of the GitHub contents API.
// Writes are rare, so three failed calls are enough to stop.
func GitHubAPIConfig() Config {
	cfg := DefaultConfig("github-api")
	cfg.MaxRequests = 2
	cfg.Interval = time.Minute
	cfg.Timeout = 30 * time.Second
	cfg.MinRequests = 3
	return cfg
}

// IndexingAPIConfig is the preset of the Google Indexing API and its OAuth
// token endpoint.
func IndexingAPIConfig() Config {
	cfg := DefaultConfig("google-indexing")
	cfg.Interval = time.Minute
	cfg.FailureThreshold = 0.7
	return cfg
}

// ImportFetchConfig is the preset of page imports. Arbitrary sites fail
// often, so the threshold is high and the breaker stays open longer.
func ImportFetchConfig() Config {
	cfg := DefaultConfig("import-fetch")
	cfg.Interval = time.Minute
	cfg.Timeout = 5 * time.Minute
	cfg.FailureThreshold = 0.8
	return cfg
}

// CircuitBreaker is safe for concurrent use.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
	name    string
}

// New creates a closed circuit breaker.
func New(cfg Config) *CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureThreshold
		},
		IsSuccessful: cfg.IsSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.SetCircuitBreakerState(name, int(to))
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}
	metrics.SetCircuitBreakerState(cfg.Name, int(gobreaker.StateClosed))

	return &CircuitBreaker{
		breaker: gobreaker.NewCircuitBreaker(settings),
		name:    cfg.Name,
	}
}

// Run executes fn through cb. While the breaker is open fn is not called and
// gobreaker.ErrOpenState is returned.
func Run[T any](cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	res, err := cb.breaker.Execute(func() (any, error) {
		return fn()
	})
	v, _ := res.(T)
	return v, err
}

// State returns the current state.
func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}

// Name returns the configured name.
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// IsOpen reports whether calls are currently rejected.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.breaker.State() == gobreaker.StateOpen
}

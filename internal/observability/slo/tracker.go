package slo

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"sort"
	"sync"
	"time"
)

// DefaultWindow is the measurement window of a Tracker.
const DefaultWindow = time.Minute

// maxSamples bounds the latencies kept per window.
const maxSamples = 10000

// Snapshot is the indicator values of one window.
type Snapshot struct {
	Requests     int
	Errors       int
	Availability float64
	ErrorRate    float64
	P95          time.Duration
	P99          time.Duration
}

// Tracker collects request outcomes and publishes them to the SLO gauges
// once per window.
type Tracker struct {
	mu        sync.Mutex
	requests  int
	errors    int
	latencies []time.Duration
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{latencies: make([]time.Duration, 0, 256)}
}

// Observe records one response. Only 5xx statuses count as errors.
func (t *Tracker) Observe(status int, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.requests++
	if status >= http.StatusInternalServerError {
		t.errors++
	}
	if len(t.latencies) < maxSamples {
		t.latencies = append(t.latencies, d)
	}
}

// Flush computes the indicators of the current window, updates the gauges
// and starts a new window. An empty window reports full availability.
func (t *Tracker) Flush() Snapshot {
	t.mu.Lock()
	requests, errs, latencies := t.requests, t.errors, t.latencies
	t.requests, t.errors = 0, 0
	t.latencies = make([]time.Duration, 0, cap(latencies))
	t.mu.Unlock()

	s := Snapshot{Requests: requests, Errors: errs, Availability: 1}
	if requests > 0 {
		s.ErrorRate = float64(errs) / float64(requests)
		s.Availability = 1 - s.ErrorRate
	}
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	s.P95 = percentile(latencies, 0.95)
	s.P99 = percentile(latencies, 0.99)

	publish(s)
	return s
}

// Run flushes every window until ctx is done, logging windows that miss
// an objective.
func (t *Tracker) Run(ctx context.Context, window time.Duration) error {
	if window <= 0 {
		window = DefaultWindow
	}
	ticker := time.NewTicker(window)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if s := t.Flush(); s.Requests > 0 && !s.Met() {
				slog.WarnContext(ctx, "service level objective missed",
					slog.Int("requests", s.Requests),
					slog.Float64("availability", s.Availability),
					slog.Duration("p95", s.P95),
					slog.Duration("p99", s.P99))
			}
		}
	}
}

// percentile uses the nearest-rank method over sorted samples.
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	rank := int(math.Ceil(p*float64(len(sorted)))) - 1
	if rank < 0 {
		rank = 0
	}
	return sorted[rank]
}

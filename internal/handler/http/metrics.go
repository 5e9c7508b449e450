package http

import (
	"net/http"
	"strconv"
	"time"

	"adsnow-blog/internal/handler/http/responsewriter"
	"adsnow-blog/internal/observability/slo"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Request metrics share the blog namespace with the business metrics so one
// dashboard selector covers both. The route label is the ServeMux pattern.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blog",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route and status code.",
	}, []string{"route", "code"})

	// Buckets reach 60s because a publish run waits on GitHub and Google.
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blog",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Time to serve an HTTP request.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"route"})

	requestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "blog",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "HTTP requests being served.",
	})

	// The post list with inline HTML is the largest body, a few hundred KB.
	responseBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blog",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "Size of HTTP response bodies.",
		Buckets:   prometheus.ExponentialBuckets(256, 4, 8),
	}, []string{"route"})
)

// MetricsMiddleware must wrap the ServeMux itself: the mux stores the matched
// pattern (e.g. "GET /api/posts/{slug}") in r.Pattern of the request it is
// handed, and that pattern is the route label. Unmatched requests are counted
// under "unmatched" so scanners cannot blow up the label set.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestsInFlight.Inc()
		defer requestsInFlight.Dec()

		rw := responsewriter.Wrap(w)
		timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
			requestDuration.WithLabelValues(routeLabel(r)).Observe(v)
		}))
		next.ServeHTTP(rw, r)
		timer.ObserveDuration()

		route := routeLabel(r)
		requestsTotal.WithLabelValues(route, strconv.Itoa(rw.StatusCode())).Inc()
		responseBytes.WithLabelValues(route).Observe(float64(rw.BytesWritten()))
	})
}

// sloExcluded are routes whose latency depends on remote APIs or which are
// scraped by monitoring.
var sloExcluded = map[string]bool{
	"POST /api/admin/publish":      true,
	"POST /api/admin/indexing":     true,
	"POST /api/admin/posts/import": true,
	"GET /metrics":                 true,
}

// TrackSLO feeds every response except those of sloExcluded routes to
// tracker. Like MetricsMiddleware it must wrap the ServeMux directly.
func TrackSLO(tracker *slo.Tracker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := responsewriter.Wrap(w)
			start := time.Now()
			next.ServeHTTP(rw, r)
			if !sloExcluded[r.Pattern] {
				tracker.Observe(rw.StatusCode(), time.Since(start))
			}
		})
	}
}

func routeLabel(r *http.Request) string {
	if r.Pattern == "" {
		return "unmatched"
	}
	return r.Pattern
}

// MetricsHandler serves the Prometheus registry.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

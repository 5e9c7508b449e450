package auth

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	authRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Total login attempts by result",
		},
		[]string{"result"}, // result: success | failure
	)

	authDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "auth_duration_seconds",
			Help:    "Login duration",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)

	authzCheckDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "authz_check_duration_seconds",
			Help:    "Bearer token check duration",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
	)

	unauthorizedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unauthorized_requests_total",
			Help: "Admin requests rejected for a missing or invalid token",
		},
		[]string{"method"},
	)
)

// RecordAuthRequest records a login attempt.
func RecordAuthRequest(result string) {
	authRequestsTotal.WithLabelValues(result).Inc()
}

// RecordAuthDuration records how long a login took.
func RecordAuthDuration(d time.Duration) {
	authDuration.Observe(d.Seconds())
}

// RecordAuthzCheckDuration records a bearer token check.
func RecordAuthzCheckDuration(d time.Duration) {
	authzCheckDuration.Observe(d.Seconds())
}

// RecordUnauthorized records a rejected admin request.
func RecordUnauthorized(method string) {
	unauthorizedTotal.WithLabelValues(method).Inc()
}

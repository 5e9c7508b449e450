// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Content metrics track the local post list
var (
	// PostsTotal tracks the number of posts in the content store by state
	PostsTotal = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "blog_posts_total",
			Help: "Number of posts in the content store",
		},
		[]string{"state"}, // state: published, draft
	)

	// PostImportsTotal counts draft imports from external URLs
	PostImportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_post_imports_total",
			Help: "Total number of post imports from external URLs",
		},
		[]string{"result"}, // result: success, failure
	)
)

// Publish metrics track the publish pipeline and its remote calls
var (
	// PublishRunsTotal counts pipeline runs by result
	PublishRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_publish_runs_total",
			Help: "Total number of publish pipeline runs",
		},
		[]string{"result"}, // result: success, failure, conflict, rejected
	)

	// PublishStepsTotal counts step outcomes
	PublishStepsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_publish_steps_total",
			Help: "Total number of publish pipeline step outcomes",
		},
		[]string{"step", "result"},
	)

	// PublishDuration measures end-to-end pipeline duration
	PublishDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "blog_publish_duration_seconds",
			Help:    "Publish pipeline duration in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
	)

	// RemoteCallDuration measures calls to GitHub and Google
	RemoteCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blog_remote_call_duration_seconds",
			Help:    "Duration of calls to remote APIs in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15},
		},
		[]string{"service", "operation", "result"},
	)

	// IndexingSubmissionsTotal counts indexing submissions by result
	IndexingSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_indexing_submissions_total",
			Help: "Total number of URLs submitted for indexing",
		},
		[]string{"type", "result"},
	)

	// CredentialCacheTotal counts credential cache lookups
	CredentialCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_credential_cache_total",
			Help: "Credential cache lookups by result",
		},
		[]string{"result"}, // result: hit, miss
	)

	// CircuitBreakerState is the state of each remote's circuit breaker
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "blog_circuit_breaker_state",
			Help: "Circuit breaker state per remote (0=closed, 1=half-open, 2=open)",
		},
		[]string{"circuit"},
	)
)

// Package slo tracks the service level indicators of the blog API and
// exposes them as Prometheus gauges.
package slo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Objectives of the public and admin routes. Publish, indexing and import
// requests wait on remote APIs and are not measured.
const (
	// AvailabilityTarget is the share of non-5xx responses.
	AvailabilityTarget = 0.995
	// ErrorRateTarget is the highest acceptable share of 5xx responses.
	ErrorRateTarget = 1 - AvailabilityTarget
	// LatencyP95Target and LatencyP99Target are in seconds.
	LatencyP95Target = 0.300
	LatencyP99Target = 1.0
)

// Indicator label values of Current and Target.
const (
	IndicatorAvailability = "availability"
	IndicatorErrorRate    = "error_rate"
	IndicatorLatencyP95   = "latency_p95_seconds"
	IndicatorLatencyP99   = "latency_p99_seconds"
)

var (
	// Current holds the indicators of the last closed window.
	Current = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blog",
		Subsystem: "slo",
		Name:      "current",
		Help:      "Service level indicators of the last window.",
	}, []string{"indicator"})

	// Target holds the objectives so alerts can compare the two series.
	Target = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blog",
		Subsystem: "slo",
		Name:      "target",
		Help:      "Service level objectives.",
	}, []string{"indicator"})
)

func init() {
	Target.WithLabelValues(IndicatorAvailability).Set(AvailabilityTarget)
	Target.WithLabelValues(IndicatorErrorRate).Set(ErrorRateTarget)
	Target.WithLabelValues(IndicatorLatencyP95).Set(LatencyP95Target)
	Target.WithLabelValues(IndicatorLatencyP99).Set(LatencyP99Target)
}

// publish copies a snapshot into Current.
func publish(s Snapshot) {
	Current.WithLabelValues(IndicatorAvailability).Set(s.Availability)
	Current.WithLabelValues(IndicatorErrorRate).Set(s.ErrorRate)
	Current.WithLabelValues(IndicatorLatencyP95).Set(s.P95.Seconds())
	Current.WithLabelValues(IndicatorLatencyP99).Set(s.P99.Seconds())
}

// Met reports whether the snapshot meets every objective.
func (s Snapshot) Met() bool {
	return s.Availability >= AvailabilityTarget &&
		s.P95.Seconds() <= LatencyP95Target &&
		s.P99.Seconds() <= LatencyP99Target
}

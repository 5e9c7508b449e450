// Package metrics provides the Prometheus metrics of the blog backend.
//
// This package centralizes content and publishing metrics:
//   - Post counts by state and draft imports
//   - Publish pipeline runs, step outcomes and duration
//   - Remote API call latency (GitHub, Google Indexing)
//   - Indexing submissions and credential cache lookups
//
// HTTP request metrics live with the HTTP middleware. All metrics are
// registered with the Prometheus default registry and exposed via /metrics.
//
// Example usage:
//
//	import "adsnow-blog/internal/observability/metrics"
//
//	func publish(ctx context.Context) {
//	    start := time.Now()
//	    // ... run the pipeline ...
//	    metrics.RecordPublishRun("success", time.Since(start))
//	}
package metrics

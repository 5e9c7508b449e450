package metrics

import (
	"time"
)

func result(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

// UpdatePostsTotal sets the post gauges from the current list.
func UpdatePostsTotal(published, drafts int) {
	PostsTotal.WithLabelValues("published").Set(float64(published))
	PostsTotal.WithLabelValues("draft").Set(float64(drafts))
}

// RecordPostImport records the result of importing a post from a URL.
func RecordPostImport(success bool) {
	PostImportsTotal.WithLabelValues(result(success)).Inc()
}

// RecordPublishRun records a finished pipeline run.
// Result should be one of "success", "failure", "conflict" or "rejected".
func RecordPublishRun(res string, duration time.Duration) {
	PublishRunsTotal.WithLabelValues(res).Inc()
	PublishDuration.Observe(duration.Seconds())
}

// RecordPublishStep records the outcome of one pipeline step.
func RecordPublishStep(step string, success bool) {
	PublishStepsTotal.WithLabelValues(step, result(success)).Inc()
}

// RecordRemoteCall records the duration of a remote API call.
//
// Example:
//
//	start := time.Now()
//	rev, err := client.GetRevision(ctx, path)
//	metrics.RecordRemoteCall("github", "get_revision", time.Since(start), err == nil)
func RecordRemoteCall(service, operation string, duration time.Duration, success bool) {
	RemoteCallDuration.WithLabelValues(service, operation, result(success)).Observe(duration.Seconds())
}

// RecordIndexingSubmission records one URL submission.
func RecordIndexingSubmission(notificationType string, success bool) {
	IndexingSubmissionsTotal.WithLabelValues(notificationType, result(success)).Inc()
}

// RecordCredentialCache records a credential cache hit or miss.
func RecordCredentialCache(hit bool) {
	if hit {
		CredentialCacheTotal.WithLabelValues("hit").Inc()
		return
	}
	CredentialCacheTotal.WithLabelValues("miss").Inc()
}

// SetCircuitBreakerState records the state of a circuit breaker, using the
// numbering of gobreaker.State.
func SetCircuitBreakerState(circuit string, state int) {
	CircuitBreakerState.WithLabelValues(circuit).Set(float64(state))
}

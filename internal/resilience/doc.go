// Package resilience holds the failure handling shared by the remote clients.
//
// circuitbreaker wraps gobreaker with one preset per remote: the GitHub
// contents API, the Google Indexing API and page imports. retry retries
// transient import failures with exponential backoff and jitter.
package resilience

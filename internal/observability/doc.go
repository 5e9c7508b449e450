// Package observability groups the logging, metrics, tracing and SLO packages
// of the blog backend. It contains no code.
//
// The server wires them in cmd/server: logging.NewLogger for the JSON log,
// tracing.Init for the tracer provider, hhttp.MetricsMiddleware and
// hhttp.TrackSLO around the route mux, and an slo.Tracker flushed once per
// window. The publish pipeline and the remote clients record their own
// counters through metrics.
package observability

// Package tracing provides OpenTelemetry tracing integration.
//
// Features:
//   - SDK tracer provider setup with ratio sampling
//   - HTTP server middleware with W3C trace-context propagation
//   - Span helpers used around publish pipeline steps and remote calls
//
// Example usage:
//
//	import "adsnow-blog/internal/observability/tracing"
//
//	func main() {
//	    shutdown := tracing.Init(1.0)
//	    defer func() { _ = shutdown(context.Background()) }()
//	}
//
//	func publish(ctx context.Context) (err error) {
//	    ctx, span := tracing.StartSpan(ctx, "publish.write")
//	    defer func() { tracing.EndSpan(span, err) }()
//	    // ... write to GitHub ...
//	}
package tracing

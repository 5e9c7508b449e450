// Package logging builds the slog loggers of the server and the CLI and
// carries a request-scoped logger through the context.
//
// The HTTP Logging middleware stores a logger enriched with request_id and
// trace_id; handlers retrieve it with FromContext:
//
//	logging.FromContext(r.Context()).Warn("import failed", slog.Any("error", err))
package logging

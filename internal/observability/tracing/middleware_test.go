package tracing

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// recordSpans installs an in-memory exporter for the duration of the test.
func recordSpans(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter)))
	otel.SetTextMapPropagator(propagation.TraceContext{})
	tracer = otel.Tracer("adsnow-blog")
	t.Cleanup(func() {
		otel.SetTracerProvider(sdktrace.NewTracerProvider())
		tracer = otel.Tracer("adsnow-blog")
	})
	return exporter
}

func blogMux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/posts/{slug}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("slug") == "lipsa" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"slug":"` + r.PathValue("slug") + `"}`))
	})
	mux.HandleFunc("POST /api/admin/publish", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	return mux
}

func serve(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, sdktrace.ReadOnlySpan) {
	t.Helper()
	exporter := recordSpans(t)
	rec := httptest.NewRecorder()
	Middleware(blogMux()).ServeHTTP(rec, req)

	spans := exporter.GetSpans().Snapshots()
	require.Len(t, spans, 1)
	return rec, spans[0]
}

func TestMiddleware_NamesSpanAfterRoute(t *testing.T) {
	rec, span := serve(t, httptest.NewRequest(http.MethodGet, "/api/posts/ghid-google-ads", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "GET /api/posts/{slug}", span.Name())
	assert.Equal(t, trace.SpanKindServer, span.SpanKind())
	assert.Contains(t, span.Attributes(), attribute.String("http.route", "GET /api/posts/{slug}"))
	assert.Contains(t, span.Attributes(), attribute.String("url.path", "/api/posts/ghid-google-ads"))
	assert.Contains(t, span.Attributes(), attribute.Int("http.response.status_code", 200))
	assert.Contains(t, span.Attributes(), attribute.Int("http.response.body.size", rec.Body.Len()))
	assert.Equal(t, codes.Unset, span.Status().Code)

	assert.Equal(t, span.SpanContext().TraceID().String(), rec.Header().Get(TraceIDHeader))
}

func TestMiddleware_UnmatchedPathKeepsRawName(t *testing.T) {
	rec, span := serve(t, httptest.NewRequest(http.MethodGet, "/nu-exista", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "GET /nu-exista", span.Name())
	for _, kv := range span.Attributes() {
		assert.NotEqual(t, attribute.Key("http.route"), kv.Key)
	}
}

func TestMiddleware_StatusClassification(t *testing.T) {
	// 4xx はクライアント側の問題なのでエラー扱いしない
	_, span := serve(t, httptest.NewRequest(http.MethodGet, "/api/posts/lipsa", nil))
	assert.Equal(t, codes.Unset, span.Status().Code)
	assert.Contains(t, span.Attributes(), attribute.Int("http.response.status_code", 404))

	_, span = serve(t, httptest.NewRequest(http.MethodPost, "/api/admin/publish", nil))
	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Equal(t, "Bad Gateway", span.Status().Description)
}

func TestMiddleware_ContinuesIncomingTrace(t *testing.T) {
	const parent = "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"
	req := httptest.NewRequest(http.MethodGet, "/api/posts/x", nil)
	req.Header.Set("traceparent", parent)

	rec, span := serve(t, req)

	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", span.SpanContext().TraceID().String())
	assert.Equal(t, "00f067aa0ba902b7", span.Parent().SpanID().String())
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", rec.Header().Get(TraceIDHeader))
}

func TestMiddleware_HandlerSeesSpanInContext(t *testing.T) {
	recordSpans(t)

	var seen string
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = TraceID(r.Context())
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(TraceIDHeader))
}

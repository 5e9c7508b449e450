package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"adsnow-blog/internal/observability/slo"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func newTestMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/posts/{slug}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"slug":"` + r.PathValue("slug") + `"}`))
	})
	mux.HandleFunc("POST /api/publish", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	return mux
}

func TestMetricsMiddleware_RoutePatternLabel(t *testing.T) {
	h := MetricsMiddleware(newTestMux())
	counter := requestsTotal.WithLabelValues("GET /api/posts/{slug}", "200")
	before := testutil.ToFloat64(counter)

	for _, slug := range []string{"ghid-seo", "ghid-ppc", "tendinte-2026"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/posts/"+slug, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	// スラッグごとにラベルが増えないこと
	assert.Equal(t, before+3, testutil.ToFloat64(counter))
}

func TestMetricsMiddleware_StatusCodes(t *testing.T) {
	h := MetricsMiddleware(newTestMux())
	counter := requestsTotal.WithLabelValues("POST /api/publish", "502")
	before := testutil.ToFloat64(counter)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/publish", strings.NewReader("{}")))

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestMetricsMiddleware_Unmatched(t *testing.T) {
	h := MetricsMiddleware(newTestMux())
	counter := requestsTotal.WithLabelValues("unmatched", "404")
	before := testutil.ToFloat64(counter)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/wp-admin/setup.php", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/.env", nil))

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestMetricsMiddleware_InFlightReturnsToZero(t *testing.T) {
	h := MetricsMiddleware(newTestMux())
	before := testutil.ToFloat64(requestsInFlight)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/posts/ghid-seo", nil))

	assert.Equal(t, before, testutil.ToFloat64(requestsInFlight))
}

func TestMetricsHandler(t *testing.T) {
	h := MetricsMiddleware(newTestMux())
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/posts/audit", nil))

	rec := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "blog_http_requests_total")
	assert.Contains(t, rec.Body.String(), `route="GET /api/posts/{slug}"`)
	assert.Contains(t, rec.Body.String(), "blog_http_response_size_bytes_bucket")
}

func TestTrackSLO_SkipsRemoteRoutes(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/posts", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("POST /api/admin/publish", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	mux.HandleFunc("GET /boom", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	tracker := slo.NewTracker()
	h := TrackSLO(tracker)(mux)
	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/posts", nil),
		httptest.NewRequest(http.MethodPost, "/api/admin/publish", nil),
		httptest.NewRequest(http.MethodGet, "/boom", nil),
	} {
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	s := tracker.Flush()
	assert.Equal(t, 2, s.Requests)
	assert.Equal(t, 1, s.Errors)
}

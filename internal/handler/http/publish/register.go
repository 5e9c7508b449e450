package publish

import "net/http"

// Register adds the publish and indexing routes to mux behind requireAuth.
func Register(mux *http.ServeMux, h Handler, ih IndexHandler, requireAuth func(http.Handler) http.Handler) {
	mux.Handle("POST /api/admin/publish", requireAuth(http.HandlerFunc(h.Publish)))
	mux.Handle("POST /api/admin/indexing", requireAuth(http.HandlerFunc(ih.Submit)))
}

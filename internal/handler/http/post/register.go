package post

import (
	"net/http"
)

// Register adds the post routes to mux. Admin routes are wrapped with requireAuth.
func Register(mux *http.ServeMux, h Handler, requireAuth func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /api/posts", h.ListPublic)
	mux.HandleFunc("GET /api/posts/{slug}", h.GetPublic)

	admin := func(fn http.HandlerFunc) http.Handler { return requireAuth(fn) }
	mux.Handle("GET /api/admin/posts", admin(h.List))
	mux.Handle("PUT /api/admin/posts", admin(h.Replace))
	mux.Handle("POST /api/admin/posts", admin(h.Create))
	mux.Handle("POST /api/admin/posts/preview", admin(h.Preview))
	mux.Handle("POST /api/admin/posts/import", admin(h.Import))
	mux.Handle("GET /api/admin/posts/{id}", admin(h.Get))
	mux.Handle("PATCH /api/admin/posts/{id}", admin(h.Update))
	mux.Handle("DELETE /api/admin/posts/{id}", admin(h.Delete))
}

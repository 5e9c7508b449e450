// Package feed serves the sitemap and the RSS feed of the blog.
package feed

import (
	"net/http"

	"adsnow-blog/internal/feed"
	"adsnow-blog/internal/handler/http/respond"
	postUC "adsnow-blog/internal/usecase/post"
)

const cacheControl = "public, max-age=300"

// Handler renders feeds from the content store.
type Handler struct {
	Posts    *postUC.Service
	Site     feed.Site
	RSSItems int
}

// Sitemap サイトマップ
// @Summary      サイトマップ
// @Description  公開済みの記事から sitemap.xml を生成します。
// @Tags         feeds
// @Produce      xml
// @Success      200 {string} string "sitemap.xml"
// @Router       /sitemap.xml [get]
func (h Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Posts.Snapshot(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	body, err := feed.Sitemap(h.Site, posts)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	write(w, "application/xml; charset=utf-8", body)
}

// RSS RSS フィード
// @Summary      RSS フィード
// @Description  最新の公開記事を RSS 2.0 で返します。
// @Tags         feeds
// @Produce      xml
// @Success      200 {string} string "rss.xml"
// @Router       /rss.xml [get]
func (h Handler) RSS(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Posts.Snapshot(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	body, err := feed.RSS(h.Site, posts, h.RSSItems)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	write(w, "application/rss+xml; charset=utf-8", body)
}

func write(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", cacheControl)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// Register adds the feed routes to mux.
func Register(mux *http.ServeMux, h Handler) {
	mux.HandleFunc("GET /sitemap.xml", h.Sitemap)
	mux.HandleFunc("GET /rss.xml", h.RSS)
}

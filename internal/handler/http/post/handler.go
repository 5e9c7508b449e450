// Package post serves the post list: the public read API used by the site and
// the admin API used by the panel to author, import and edit posts.
package post

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"adsnow-blog/internal/common/pagination"
	"adsnow-blog/internal/domain/entity"
	"adsnow-blog/internal/extractor"
	"adsnow-blog/internal/handler/http/respond"
	"adsnow-blog/internal/observability/logging"
	postUC "adsnow-blog/internal/usecase/post"
)

// Handler holds the post use cases.
type Handler struct {
	Svc           *postUC.Service
	PaginationCfg pagination.Config
}

// ListPublic 公開記事一覧
// @Summary      公開記事一覧
// @Description  公開済みの記事をページ単位で返します。featured, category, tag で絞り込めます。
// @Tags         posts
// @Produce      json
// @Param        page      query  int     false  "ページ番号 (1-based)" default(1) minimum(1)
// @Param        limit     query  int     false  "1ページあたりの件数" default(12) minimum(1) maximum(100)
// @Param        featured  query  bool    false  "おすすめ記事のみ"
// @Param        category  query  string  false  "カテゴリ"
// @Param        tag       query  string  false  "タグ"
// @Success      200 {object} pagination.Response[entity.Post]
// @Failure      400 {object} map[string]string "Invalid query parameters"
// @Failure      500 {object} map[string]string "サーバーエラー"
// @Router       /api/posts [get]
func (h Handler) ListPublic(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}
	filter, err := parseFilter(r)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}
	// 公開ルートでは下書きを返さない
	published := true
	filter.Published = &published

	res, err := h.Svc.ListPage(r.Context(), filter, params)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, pagination.NewResponse(res.Data, res.Pagination))
}

// GetPublic 公開記事取得
// @Summary      公開記事取得
// @Description  スラッグで公開記事を1件返します。下書きは 404 になります。
// @Tags         posts
// @Produce      json
// @Param        slug  path  string  true  "スラッグ"
// @Success      200 {object} entity.Post
// @Failure      404 {object} map[string]string "post not found"
// @Router       /api/posts/{slug} [get]
func (h Handler) GetPublic(w http.ResponseWriter, r *http.Request) {
	p, err := h.Svc.GetBySlug(r.Context(), r.PathValue("slug"), true)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, p)
}

// List 記事リスト取得（管理）
// @Summary      記事リスト取得
// @Description  コンテンツストアの記事配列を下書きを含めてそのまま返します。
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        published  query  bool    false  "公開状態で絞り込み"
// @Param        featured   query  bool    false  "おすすめ記事のみ"
// @Param        category   query  string  false  "カテゴリ"
// @Param        tag        query  string  false  "タグ"
// @Success      200 {array} entity.Post
// @Failure      401 {object} map[string]string "Authentication required"
// @Router       /api/admin/posts [get]
func (h Handler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}
	posts, err := h.Svc.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, posts)
}

// Replace 記事リスト置換
// @Summary      記事リスト置換
// @Description  記事配列全体を置き換えます。ID とスラッグは一意でなければなりません。
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        posts  body  []entity.Post  true  "記事配列"
// @Success      200 {array} entity.Post
// @Failure      400 {object} map[string]string "Bad request - invalid input"
// @Failure      401 {object} map[string]string "Authentication required"
// @Router       /api/admin/posts [put]
func (h Handler) Replace(w http.ResponseWriter, r *http.Request) {
	var posts []entity.Post
	if err := decode(r, &posts); err != nil {
		writeError(w, err)
		return
	}
	if posts == nil {
		respond.Message(w, http.StatusBadRequest, "a JSON array of posts is required")
		return
	}
	if err := h.Svc.Replace(r.Context(), posts); err != nil {
		writeError(w, err)
		return
	}
	logging.FromContext(r.Context()).Info("posts replaced", slog.Int("count", len(posts)))

	saved, err := h.Svc.Snapshot(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, saved)
}

// Create 記事作成
// @Summary      記事作成
// @Description  HTML（または Markdown）からメタデータを抽出して記事を作成します。
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        post  body  createRequest  true  "記事の本文とフラグ"
// @Success      201 {object} entity.Post
// @Failure      400 {object} map[string]string "Bad request - invalid input"
// @Failure      401 {object} map[string]string "Authentication required"
// @Router       /api/admin/posts [post]
func (h Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	format, err := extractor.ParseFormat(req.Format)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.Svc.Create(r.Context(), req.input(format))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Location", "/api/admin/posts/"+strconv.FormatInt(p.ID, 10))
	respond.JSON(w, http.StatusCreated, p)
}

// Preview メタデータ抽出プレビュー
// @Summary      メタデータ抽出プレビュー
// @Description  保存せずに抽出結果と各フィールドの取得元（found / default）を返します。
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body  previewRequest  true  "本文"
// @Success      200 {object} previewResponse
// @Failure      400 {object} map[string]string "Bad request - invalid input"
// @Router       /api/admin/posts/preview [post]
func (h Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	format, err := extractor.ParseFormat(req.Format)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	meta, html, err := h.Svc.Preview(req.Content, format, req.Slug)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, newPreviewResponse(meta, html))
}

// Import URL から記事をインポート
// @Summary      URL から記事をインポート
// @Description  外部ページを取得し、本文を抽出して下書きとして保存します。
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body  importRequest  true  "インポート元 URL"
// @Success      201 {object} entity.Post
// @Failure      400 {object} map[string]string "Bad request - invalid URL"
// @Failure      502 {object} map[string]string "The page could not be read"
// @Failure      504 {object} map[string]string "The page did not load in time"
// @Router       /api/admin/posts/import [post]
func (h Handler) Import(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	p, err := h.Svc.Import(r.Context(), postUC.ImportInput{URL: strings.TrimSpace(req.URL), Slug: req.Slug})
	if err != nil {
		logging.FromContext(r.Context()).Warn("import failed",
			slog.String("url", req.URL),
			slog.Any("error", err))
		writeError(w, err)
		return
	}
	w.Header().Set("Location", "/api/admin/posts/"+strconv.FormatInt(p.ID, 10))
	respond.JSON(w, http.StatusCreated, p)
}

// Get 記事取得（管理）
// @Summary      記事取得
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "記事 ID"
// @Success      200 {object} entity.Post
// @Failure      404 {object} map[string]string "post not found"
// @Router       /api/admin/posts/{id} [get]
func (h Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, p)
}

// Update 記事更新
// @Summary      記事更新
// @Description  指定したフィールドだけを更新します。ID は変わりません。
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path  int            true  "記事 ID"
// @Param        post  body  updateRequest  true  "更新するフィールド"
// @Success      200 {object} entity.Post
// @Failure      400 {object} map[string]string "Bad request - invalid input"
// @Failure      404 {object} map[string]string "post not found"
// @Router       /api/admin/posts/{id} [patch]
func (h Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req updateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	p, err := h.Svc.Update(r.Context(), id, req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, p)
}

// Delete 記事削除
// @Summary      記事削除
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  int  true  "記事 ID"
// @Success      204 "No Content"
// @Failure      404 {object} map[string]string "post not found"
// @Router       /api/admin/posts/{id} [delete]
func (h Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Message(w, http.StatusBadRequest, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

func parseFilter(r *http.Request) (postUC.Filter, error) {
	q := r.URL.Query()
	f := postUC.Filter{
		Category: strings.TrimSpace(q.Get("category")),
		Tag:      strings.TrimSpace(q.Get("tag")),
	}
	for name, dst := range map[string]**bool{"published": &f.Published, "featured": &f.Featured} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return postUC.Filter{}, &entity.ValidationError{Field: name, Message: "must be true or false"}
		}
		*dst = &v
	}
	return f, nil
}

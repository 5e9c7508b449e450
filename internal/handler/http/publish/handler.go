// Package publish serves the publish and indexing actions of the admin panel.
package publish

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"adsnow-blog/internal/domain/entity"
	"adsnow-blog/internal/feed"
	"adsnow-blog/internal/handler/http/respond"
	"adsnow-blog/internal/observability/logging"
	postUC "adsnow-blog/internal/usecase/post"
	publishUC "adsnow-blog/internal/usecase/publish"
)

// Handler runs the publish pipeline for the admin panel.
type Handler struct {
	// Pipeline is nil when no content repository is configured.
	Pipeline *publishUC.Pipeline
	Posts    *postUC.Service
	// Site is used to render the sitemap artifact. Sitemap requests are
	// rejected when Site.URL is empty.
	Site        feed.Site
	SitemapPath string
}

// publishRequest is the body of POST /api/admin/publish.
type publishRequest struct {
	// Token is the GitHub access token of the editor.
	Token string `json:"token"`
	// Posts replaces the remote list. When absent the content store is published.
	Posts   []entity.Post `json:"posts,omitempty"`
	Message string        `json:"message,omitempty" example:"Articol nou: Ghid Google Ads 2026"`
	// Sitemap also commits the regenerated sitemap.
	Sitemap      bool     `json:"sitemap"`
	IndexURLs    []string `json:"indexUrls,omitempty"`
	SkipIndexing bool     `json:"skipIndexing"`
	// AllowEmpty confirms that an empty list should clear the remote file.
	AllowEmpty bool `json:"allowEmpty"`
}

// Publish 記事リストの公開
// @Summary      記事リストの公開
// @Description  記事リストを GitHub のコンテンツリポジトリにコミットし、公開済み URL をインデックス登録します。
// @Description  各ステップの結果はレポートとして返されます。失敗時もレポートを返します。
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body  publishRequest  true  "GitHub トークンと公開オプション"
// @Success      200 {object} publishUC.Report
// @Failure      400 {object} map[string]string "Bad request - invalid input"
// @Failure      501 {object} map[string]string "Publishing is not configured"
// @Failure      401 {object} publishUC.Report "GitHub rejected the token"
// @Failure      403 {object} publishUC.Report "The token cannot write to the repository"
// @Failure      409 {object} publishUC.Report "The content file changed on GitHub"
// @Failure      502 {object} publishUC.Report "GitHub error"
// @Failure      504 {object} publishUC.Report "GitHub did not answer in time"
// @Router       /api/admin/publish [post]
func (h Handler) Publish(w http.ResponseWriter, r *http.Request) {
	if h.Pipeline == nil {
		respond.Message(w, http.StatusNotImplemented, "publishing is not configured: set GITHUB_OWNER and GITHUB_REPO")
		return
	}
	var req publishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Message(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		respond.Message(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	posts := req.Posts
	if posts == nil {
		snapshot, err := h.Posts.Snapshot(r.Context())
		if err != nil {
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}
		posts = snapshot
	}

	run := publishUC.Request{
		Token:        req.Token,
		Posts:        posts,
		Message:      req.Message,
		IndexURLs:    req.IndexURLs,
		SkipIndexing: req.SkipIndexing,
		AllowEmpty:   req.AllowEmpty,
	}
	if req.Sitemap {
		if h.Site.URL == "" {
			respond.Message(w, http.StatusBadRequest, "sitemap is not available: the site URL is not configured")
			return
		}
		artifact, err := publishUC.SitemapArtifact(h.Site, h.SitemapPath, posts)
		if err != nil {
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}
		run.Artifact = artifact
	}

	report, err := h.Pipeline.Run(r.Context(), run)
	if err != nil {
		if publishUC.IsValidationError(err) {
			respond.Message(w, http.StatusBadRequest, err.Error())
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	logging.FromContext(r.Context()).Info("publish requested",
		slog.String("run_id", report.RunID),
		slog.Int("posts", len(posts)),
		slog.Bool("sitemap", req.Sitemap),
		slog.Bool("success", report.Success))
	respond.JSON(w, StatusFor(report), report)
}

// StatusFor maps a report to the HTTP status of the publish response.
func StatusFor(report *publishUC.Report) int {
	if report.Success {
		return http.StatusOK
	}
	switch report.Failure {
	case publishUC.FailureAuth:
		return http.StatusUnauthorized
	case publishUC.FailureForbidden:
		return http.StatusForbidden
	case publishUC.FailureTimeout:
		return http.StatusGatewayTimeout
	case publishUC.FailureConflict:
		return http.StatusConflict
	case publishUC.FailureRemote, publishUC.FailureVerification:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

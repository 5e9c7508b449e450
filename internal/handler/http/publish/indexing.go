package publish

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"adsnow-blog/internal/handler/http/respond"
	"adsnow-blog/internal/infra/indexing"
	"adsnow-blog/internal/observability/logging"
	indexUC "adsnow-blog/internal/usecase/index"

	"github.com/sony/gobreaker"
)

// IndexHandler submits single URLs to the indexing API.
type IndexHandler struct {
	Svc *indexUC.Service
}

type indexRequest struct {
	URL string `json:"url" example:"https://adsnow.ro/blog/ghid-google-ads-2026"`
	// Type is URL_UPDATED (default) or URL_DELETED. "updated" and "deleted" are accepted.
	Type string `json:"type,omitempty" example:"URL_UPDATED"`
}

type indexResponse struct {
	URL          string                `json:"url"`
	Type         string                `json:"type"`
	Notification indexing.Notification `json:"notification"`
}

// Submit URL のインデックス登録
// @Summary      URL のインデックス登録
// @Description  1件の URL を Google Indexing API に送信します。URL はサイトのオリジン配下でなければなりません。
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body  indexRequest  true  "URL と通知タイプ"
// @Success      200 {object} indexResponse
// @Failure      400 {object} map[string]string "Bad request - invalid URL or type"
// @Failure      501 {object} map[string]string "Indexing is not configured"
// @Failure      502 {object} map[string]string "Indexing API error"
// @Failure      503 {object} map[string]string "Indexing API temporarily unavailable"
// @Failure      504 {object} map[string]string "Indexing API did not answer in time"
// @Router       /api/admin/indexing [post]
func (h IndexHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req indexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	typ, err := indexing.ParseNotificationType(req.Type)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	pageURL := strings.TrimSpace(req.URL)
	n, err := h.Svc.Submit(r.Context(), pageURL, typ)
	if err != nil {
		logging.FromContext(r.Context()).Warn("indexing submission failed",
			slog.String("url", pageURL),
			slog.String("type", string(typ)),
			slog.Any("error", err))
		writeIndexError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, indexResponse{URL: pageURL, Type: string(typ), Notification: n})
}

func writeIndexError(w http.ResponseWriter, err error) {
	var apiErr *indexing.APIError
	switch {
	case errors.Is(err, indexUC.ErrInvalidURL):
		respond.Message(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, indexUC.ErrNotConfigured):
		respond.Message(w, http.StatusNotImplemented, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		respond.Message(w, http.StatusGatewayTimeout, "the indexing API did not answer in time")
	case errors.Is(err, gobreaker.ErrOpenState):
		respond.Message(w, http.StatusServiceUnavailable, "the indexing API is temporarily unavailable")
	case errors.As(err, &apiErr):
		// 応答本文はそのまま返す
		respond.JSON(w, http.StatusBadGateway, map[string]any{
			"error":  "the indexing API rejected the request",
			"status": apiErr.StatusCode,
			"body":   apiErr.Body,
		})
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}

// Package auth serves the admin login endpoint and guards admin routes with bearer tokens.
package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"adsnow-blog/internal/handler/http/respond"
	"adsnow-blog/internal/observability/logging"
	authservice "adsnow-blog/internal/service/auth"
)

type loginRequest struct {
	Username string `json:"username" example:"editor@adsnow.ro"`
	Password string `json:"password" example:"your_password"`
}

type tokenResponse struct {
	Token     string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt string `json:"expiresAt" example:"2026-03-14T10:00:00Z"`
}

// TokenHandler exchanges the admin username and password for a token.
//
// @Summary      JWT トークン取得
// @Description  管理者のユーザー名とパスワードで認証し、1時間有効な JWT を発行します
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "ログイン情報"
// @Success      200 {object} tokenResponse
// @Failure      400 {object} map[string]string "リクエストが不正"
// @Failure      401 {object} map[string]string "認証失敗"
// @Failure      429 {object} map[string]string "rate limit exceeded"
// @Router       /auth/token [post]
func TokenHandler(svc *authservice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := logging.FromContext(r.Context())

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			RecordAuthRequest("failure")
			respond.Message(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Username == "" || req.Password == "" {
			RecordAuthRequest("failure")
			respond.Message(w, http.StatusBadRequest, "username and password are required")
			return
		}

		if err := svc.Authenticate(r.Context(), authservice.Credentials{Username: req.Username, Password: req.Password}); err != nil {
			RecordAuthRequest("failure")
			RecordAuthDuration(time.Since(start))
			if !errors.Is(err, authservice.ErrInvalidCredentials) {
				respond.SafeError(w, http.StatusInternalServerError, err)
				return
			}
			logger.Warn("authentication failed", slog.String("reason", "invalid_credentials"))
			respond.Message(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		token, exp, err := svc.IssueToken(req.Username)
		if err != nil {
			RecordAuthRequest("failure")
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}

		RecordAuthRequest("success")
		RecordAuthDuration(time.Since(start))
		logger.Info("authentication successful", slog.String("user", req.Username))

		respond.JSON(w, http.StatusOK, tokenResponse{Token: token, ExpiresAt: exp.UTC().Format(time.RFC3339)})
	}
}

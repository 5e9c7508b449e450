package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"adsnow-blog/internal/handler/http/respond"
	"adsnow-blog/internal/observability/logging"
	authservice "adsnow-blog/internal/service/auth"
)

type ctxKey string

const ctxUser ctxKey = "user"

// UserFromContext returns the subject of the verified token, or "".
func UserFromContext(ctx context.Context) string {
	if u, ok := ctx.Value(ctxUser).(string); ok {
		return u
	}
	return ""
}

// Require wraps admin routes. Requests without a valid "Bearer" token get 401.
func Require(svc *authservice.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			defer func() { RecordAuthzCheckDuration(time.Since(start)) }()

			token, ok := bearer(r.Header.Get("Authorization"))
			if !ok {
				RecordUnauthorized(r.Method)
				respond.Message(w, http.StatusUnauthorized, "authorization token required")
				return
			}
			claims, err := svc.ParseToken(token)
			if err != nil {
				RecordUnauthorized(r.Method)
				logging.FromContext(r.Context()).Warn("rejected token", slog.Any("error", err))
				respond.Message(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ctxUser, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearer(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Package http holds the middleware, health probes and metrics endpoint of the
// blog API. Route handlers live in sub-packages (post, publish, auth, feed).
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"adsnow-blog/internal/handler/http/respond"
	"adsnow-blog/internal/repository"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // RFC 3339
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus is the status of one dependency.
type CheckStatus struct {
	Status  string         `json:"status"` // "healthy", "unhealthy" or "disabled"
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthHandler reports the content store and which remote integrations are configured.
// Only the content store decides the overall status; publishing and indexing
// can be configured later without the service being unhealthy.
type HealthHandler struct {
	Store   repository.PostStore
	Version string

	// GitHubTarget is "owner/repo@branch", empty when publishing is not configured.
	GitHubTarget string
	// SiteURL is set when the indexing client is configured.
	SiteURL string
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]CheckStatus{
		"content_store": h.checkStore(ctx),
		"github":        optional(h.GitHubTarget, "target"),
		"indexing":      optional(h.SiteURL, "site_url"),
	}

	status, code := "healthy", http.StatusOK
	if checks["content_store"].Status != "healthy" {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkStore(ctx context.Context) CheckStatus {
	if h.Store == nil {
		return CheckStatus{Status: "unhealthy", Message: "not configured"}
	}
	posts, err := h.Store.Load(ctx)
	if err != nil {
		return CheckStatus{Status: "unhealthy", Message: respond.SanitizeError(err)}
	}
	published := 0
	for _, p := range posts {
		if p.Published {
			published++
		}
	}
	return CheckStatus{
		Status:  "healthy",
		Details: map[string]any{"posts": len(posts), "published": published},
	}
}

func optional(value, key string) CheckStatus {
	if value == "" {
		return CheckStatus{Status: "disabled", Message: "not configured"}
	}
	return CheckStatus{Status: "healthy", Details: map[string]any{key: value}}
}

// ReadyHandler answers 200 once the content store can be read.
type ReadyHandler struct {
	Store repository.PostStore
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.Store == nil {
		http.Error(w, "content store not configured", http.StatusServiceUnavailable)
		return
	}
	if _, err := h.Store.Load(ctx); err != nil {
		http.Error(w, "content store not ready", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ready")); err != nil {
		slog.Default().Warn("ready: failed to write response", slog.Any("error", err))
	}
}

// LiveHandler always answers 200 while the process serves requests.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		slog.Default().Warn("alive: failed to write response", slog.Any("error", err))
	}
}

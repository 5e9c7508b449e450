package index

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"adsnow-blog/internal/domain/entity"
	"adsnow-blog/internal/infra/indexing"
	"adsnow-blog/internal/observability/metrics"

	"golang.org/x/time/rate"
)

// DefaultInterval is the pause between two submissions.
const DefaultInterval = time.Second

// Submitter is the remote indexing client.
type Submitter interface {
	SubmitURL(ctx context.Context, pageURL string, typ indexing.NotificationType) (indexing.Notification, error)
}

// Outcome is the result of submitting one URL.
type Outcome struct {
	URL        string `json:"url"`
	Type       string `json:"type"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Error      string `json:"error,omitempty"`
	NotifyTime string `json:"notifyTime,omitempty"`
}

// Service validates and submits URLs one at a time.
type Service struct {
	submitter Submitter
	siteURL   string
	limiter   *rate.Limiter
}

// NewService creates a Service. A nil submitter yields a service whose
// submissions fail with ErrNotConfigured. interval <= 0 means DefaultInterval.
func NewService(submitter Submitter, siteURL string, interval time.Duration) *Service {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Service{
		submitter: submitter,
		siteURL:   siteURL,
		// 1リクエスト/interval、バーストなし
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Enabled reports whether a remote client is configured.
func (s *Service) Enabled() bool {
	return s.submitter != nil
}

// SiteURL returns the origin every submitted URL must start with.
func (s *Service) SiteURL() string {
	return s.siteURL
}

// ValidateURL checks that rawURL is an absolute URL under the site origin.
func (s *Service) ValidateURL(rawURL string) error {
	if err := entity.ValidateSiteURL(rawURL, s.siteURL); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	return nil
}

// Submit validates rawURL and submits it. Invalid URLs are rejected without
// a remote call.
func (s *Service) Submit(ctx context.Context, rawURL string, typ indexing.NotificationType) (indexing.Notification, error) {
	if err := s.ValidateURL(rawURL); err != nil {
		return indexing.Notification{}, err
	}
	if s.submitter == nil {
		return indexing.Notification{}, ErrNotConfigured
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return indexing.Notification{}, fmt.Errorf("rate limit wait: %w", err)
	}

	start := time.Now()
	n, err := s.submitter.SubmitURL(ctx, rawURL, typ)
	metrics.RecordRemoteCall("google", "submit_url", time.Since(start), err == nil)
	metrics.RecordIndexingSubmission(string(typ), err == nil)
	if err != nil {
		return indexing.Notification{}, err
	}
	return n, nil
}

// SubmitAll submits urls serially and returns exactly one outcome per URL,
// in order. Failures are recorded in the outcomes and never abort the run.
func (s *Service) SubmitAll(ctx context.Context, urls []string, typ indexing.NotificationType) []Outcome {
	outcomes := make([]Outcome, 0, len(urls))
	for _, u := range urls {
		out := Outcome{URL: u, Type: string(typ)}

		n, err := s.Submit(ctx, u, typ)
		if err != nil {
			out.Message = "indexing submission failed"
			out.Error = err.Error()
			slog.Warn("indexing submission failed",
				slog.String("url", u),
				slog.Any("error", err))
		} else {
			out.Success = true
			out.Message = "submitted for indexing"
			if n.LatestUpdate != nil {
				out.NotifyTime = n.LatestUpdate.NotifyTime
			} else if n.LatestRemove != nil {
				out.NotifyTime = n.LatestRemove.NotifyTime
			}
		}
		outcomes = append(outcomes, out)
	}
	return outcomes
}

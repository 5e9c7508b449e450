// Package importer fetches third-party articles so they can be turned into
// draft posts. The main content is isolated with Mozilla's Readability
// algorithm (go-readability) and sanitized with bluemonday before it is
// stored as post HTML.
package importer

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"adsnow-blog/internal/resilience/circuitbreaker"
	"adsnow-blog/internal/resilience/retry"

	"github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"
)

// Page is a fetched article.
type Page struct {
	// URL is the final URL after redirects.
	URL string
	// HTML is the raw document. Metadata (meta tags, og:image) is read from it.
	HTML string
	// Title is the title Readability picked for the article.
	Title string
	// Content is the sanitized HTML of the main article body.
	Content string
	// Text is the plain text of the main article body.
	Text string
}

// Importer is safe for concurrent use.
type Importer struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	policy         *bluemonday.Policy
	config         Config
}

// New creates an Importer. Every redirect target is validated like the
// original URL.
func New(config Config) (*Importer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("importer config: %w", err)
	}

	imp := &Importer{
		circuitBreaker: circuitbreaker.New(circuitbreaker.ImportFetchConfig()),
		policy:         bluemonday.UGCPolicy(),
		config:         config,
	}
	imp.client = &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= imp.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", ErrTooManyRedirects, len(via))
			}
			if err := validateURL(req.URL.String(), imp.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}
	return imp, nil
}

// Fetch downloads rawURL and extracts its main content.
// Transient failures (5xx, 429, connection resets) are retried with backoff.
// A request that exceeds Config.Timeout fails with ErrTimeout and is not retried.
func (i *Importer) Fetch(ctx context.Context, rawURL string) (Page, error) {
	if err := validateURL(rawURL, i.config.DenyPrivateIPs); err != nil {
		return Page{}, err
	}

	var page Page
	err := retry.WithBackoff(ctx, i.config.Retry, func() error {
		p, err := circuitbreaker.Run(i.circuitBreaker, func() (Page, error) {
			return i.doFetch(ctx, rawURL)
		})
		if err != nil {
			return err
		}
		page = p
		return nil
	})
	if err != nil {
		return Page{}, err
	}
	return page, nil
}

func (i *Importer) doFetch(ctx context.Context, rawURL string) (Page, error) {
	reqCtx, cancel := context.WithTimeout(ctx, i.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Page{}, fmt.Errorf("%w: failed to create request: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", i.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := i.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return Page{}, fmt.Errorf("%w: request exceeded %v: %w", ErrTimeout, i.config.Timeout, err)
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) && (errors.Is(urlErr.Err, ErrTooManyRedirects) ||
			errors.Is(urlErr.Err, ErrPrivateIP) || errors.Is(urlErr.Err, ErrInvalidURL)) {
			return Page{}, urlErr.Err
		}
		return Page{}, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Page{}, retry.NewHTTPError(resp)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, i.config.MaxBodySize+1))
	if err != nil {
		return Page{}, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > i.config.MaxBodySize {
		return Page{}, fmt.Errorf("%w: response exceeds %d bytes", ErrBodyTooLarge, i.config.MaxBodySize)
	}

	finalURL := req.URL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL
	}

	article, err := readability.FromReader(bytes.NewReader(body), finalURL)
	if err != nil {
		return Page{}, fmt.Errorf("%w: %v", ErrNoContent, err)
	}
	content := strings.TrimSpace(i.policy.Sanitize(article.Content))
	if content == "" {
		return Page{}, ErrNoContent
	}

	slog.Debug("page imported",
		slog.String("url", finalURL.String()),
		slog.Int("content_length", len(content)))

	return Page{
		URL:     finalURL.String(),
		HTML:    string(body),
		Title:   strings.TrimSpace(article.Title),
		Content: content,
		Text:    strings.TrimSpace(article.TextContent),
	}, nil
}

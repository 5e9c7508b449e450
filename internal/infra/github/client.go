// Package github is a small client for the GitHub contents API.
//
// It covers exactly what publishing needs: reading the revision (blob SHA) of
// a file, writing a file with optimistic concurrency, and checking that a
// personal access token is accepted.
package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"adsnow-blog/internal/resilience/circuitbreaker"

	"golang.org/x/oauth2"
)

const (
	// DefaultBaseURL is the public GitHub REST endpoint.
	DefaultBaseURL = "https://api.github.com"
	// DefaultTimeout is the per-call deadline.
	DefaultTimeout = 15 * time.Second

	apiVersion      = "2022-11-28"
	maxResponseBody = 10 << 20
)

// Config describes the repository the client writes to.
type Config struct {
	BaseURL string
	Owner   string
	Repo    string
	Branch  string
	Token   string

	// Timeout bounds every API call. Zero means DefaultTimeout.
	Timeout time.Duration
	// UserAgent is sent on every request. GitHub rejects requests without one.
	UserAgent string
	// Transport is the base round tripper. Nil means http.DefaultTransport.
	Transport http.RoundTripper
}

// Outcome is the result kind of a write.
type Outcome int

const (
	Created Outcome = iota + 1
	Updated
	// Conflict means the revision sent with the write is stale: someone else
	// changed the file after it was read.
	Conflict
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Updated:
		return "updated"
	case Conflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Revision identifies the last known state of a remote file.
// A zero Revision means the file does not exist.
type Revision struct {
	SHA    string
	Exists bool
}

// WriteResult describes a completed write.
type WriteResult struct {
	Outcome   Outcome
	CommitSHA string
	// ContentSHA is the new revision of the file.
	ContentSHA string
	// Message is GitHub's explanation when Outcome is Conflict.
	Message string
}

// User is the identity behind a token.
type User struct {
	Login string `json:"login"`
	ID    int64  `json:"id"`
	Name  string `json:"name"`
}

// Client talks to one repository on one branch.
type Client struct {
	cfg        Config
	httpClient *http.Client
	breaker    *circuitbreaker.CircuitBreaker
}

// NewClient validates cfg and returns a client.
// The token may be empty when the client is only used through WithToken.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Owner == "" || cfg.Repo == "" {
		return nil, fmt.Errorf("github: owner and repo are required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Branch == "" {
		cfg.Branch = "main"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "adsnow-blog"
	}
	if cfg.Transport == nil {
		cfg.Transport = http.DefaultTransport
	}

	breakerCfg := circuitbreaker.GitHubAPIConfig()
	breakerCfg.IsSuccessful = isClientSide

	c := &Client{
		cfg:     cfg,
		breaker: circuitbreaker.New(breakerCfg),
	}
	c.httpClient = c.newHTTPClient(cfg.Token)
	return c, nil
}

// WithToken returns a client using token that shares the circuit breaker of c.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.cfg.Token = token
	clone.httpClient = c.newHTTPClient(token)
	return &clone
}

// Config returns the effective configuration. The token is omitted.
func (c *Client) Config() Config {
	cfg := c.cfg
	cfg.Token = ""
	return cfg
}

func (c *Client) newHTTPClient(token string) *http.Client {
	return &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   c.cfg.Transport,
		},
	}
}

type contentResponse struct {
	SHA string `json:"sha"`
}

type writeRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
	SHA     string `json:"sha,omitempty"`
}

type writeResponse struct {
	Content struct {
		SHA string `json:"sha"`
	} `json:"content"`
	Commit struct {
		SHA string `json:"sha"`
	} `json:"commit"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// GetRevision returns the current revision of path.
// A missing file is not an error: the returned Revision has Exists == false.
func (c *Client) GetRevision(ctx context.Context, path string) (Revision, error) {
	endpoint := c.contentsURL(path) + "?ref=" + url.QueryEscape(c.cfg.Branch)

	var out contentResponse
	status, err := c.do(ctx, http.MethodGet, endpoint, nil, &out, http.StatusNotFound)
	if err != nil {
		return Revision{}, fmt.Errorf("GetRevision %s: %w", path, err)
	}
	if status == http.StatusNotFound {
		return Revision{}, nil
	}
	return Revision{SHA: out.SHA, Exists: true}, nil
}

// Write stores content at path. A Revision with Exists == false creates the
// file; otherwise the write only succeeds if rev is still current.
// A stale revision is reported as a Conflict outcome, not as an error.
func (c *Client) Write(ctx context.Context, path string, content []byte, rev Revision, message string) (WriteResult, error) {
	body := writeRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		Branch:  c.cfg.Branch,
	}
	if rev.Exists {
		body.SHA = rev.SHA
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return WriteResult{}, fmt.Errorf("Write %s: marshal: %w", path, err)
	}

	var out writeResponse
	status, err := c.do(ctx, http.MethodPut, c.contentsURL(path), payload, &out)
	if err != nil {
		if msg, ok := conflictMessage(err); ok {
			return WriteResult{Outcome: Conflict, Message: msg}, nil
		}
		return WriteResult{}, fmt.Errorf("Write %s: %w", path, err)
	}

	res := WriteResult{
		Outcome:    Updated,
		CommitSHA:  out.Commit.SHA,
		ContentSHA: out.Content.SHA,
	}
	if status == http.StatusCreated {
		res.Outcome = Created
	}
	return res, nil
}

// VerifyCredential checks the token against GET /user.
func (c *Client) VerifyCredential(ctx context.Context) (User, error) {
	if c.cfg.Token == "" {
		return User{}, ErrMissingToken
	}
	var u User
	if _, err := c.do(ctx, http.MethodGet, c.cfg.BaseURL+"/user", nil, &u); err != nil {
		return User{}, fmt.Errorf("VerifyCredential: %w", err)
	}
	return u, nil
}

// conflictMessage recognizes the two ways GitHub reports a stale sha:
// 409 Conflict, and 422 with "sha" / "does not match" in the message.
func conflictMessage(err error) (string, bool) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return "", false
	}
	switch apiErr.StatusCode {
	case http.StatusConflict:
		return apiErr.Message, true
	case http.StatusUnprocessableEntity:
		msg := strings.ToLower(apiErr.Message)
		if strings.Contains(msg, "does not match") || strings.Contains(msg, "sha") {
			return apiErr.Message, true
		}
	}
	return "", false
}

func (c *Client) contentsURL(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s",
		c.cfg.BaseURL, url.PathEscape(c.cfg.Owner), url.PathEscape(c.cfg.Repo), strings.Join(segments, "/"))
}

// do performs one API call under the per-call deadline and the circuit breaker.
// Statuses listed in allowed are returned without error and without decoding.
func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte, out any, allowed ...int) (int, error) {
	if c.cfg.Token == "" {
		return 0, ErrMissingToken
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	return circuitbreaker.Run(c.breaker, func() (int, error) {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
		if err != nil {
			return 0, fmt.Errorf("create http request: %w", err)
		}
		req.Header.Set("Accept", "application/vnd.github+json")
		req.Header.Set("X-GitHub-Api-Version", apiVersion)
		req.Header.Set("User-Agent", c.cfg.UserAgent)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return 0, fmt.Errorf("execute http request: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
		if err != nil {
			return resp.StatusCode, fmt.Errorf("read response body: %w", err)
		}

		for _, code := range allowed {
			if resp.StatusCode == code {
				return resp.StatusCode, nil
			}
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return resp.StatusCode, &APIError{StatusCode: resp.StatusCode, Message: errorText(data)}
		}

		if out != nil && len(data) > 0 {
			if err := json.Unmarshal(data, out); err != nil {
				return resp.StatusCode, fmt.Errorf("decode response: %w", err)
			}
		}
		return resp.StatusCode, nil
	})
}

func errorText(body []byte) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		return "empty response body"
	}
	return text
}

// Package indexing submits URL change notifications to the Google Indexing API.
//
// Access tokens come from the OAuth 2.0 JWT-bearer flow: the client signs an
// RS256 assertion with the service-account key and exchanges it at the token
// endpoint. Tokens are cached until shortly before they expire, and concurrent
// callers share a single exchange.
package indexing

import (
	"bytes"
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"adsnow-blog/internal/resilience/circuitbreaker"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

const (
	// Scope is the only OAuth scope the Indexing API accepts.
	Scope = "https://www.googleapis.com/auth/indexing"
	// DefaultTokenURI is used when the service account does not name one.
	DefaultTokenURI = "https://oauth2.googleapis.com/token"
	// DefaultEndpoint is the publish endpoint of the Indexing API.
	DefaultEndpoint = "https://indexing.googleapis.com/v3/urlNotifications:publish"
	// DefaultTimeout is the per-call deadline.
	DefaultTimeout = 15 * time.Second

	grantTypeJWTBearer = "urn:ietf:params:oauth:grant-type:jwt-bearer"
	assertionLifetime  = time.Hour
	maxResponseBody    = 1 << 20
)

// NotificationType is the kind of change being announced.
type NotificationType string

const (
	URLUpdated NotificationType = "URL_UPDATED"
	URLDeleted NotificationType = "URL_DELETED"
)

// ParseNotificationType accepts the API spelling as well as the short
// "updated" and "deleted" forms. Empty means URL_UPDATED.
func ParseNotificationType(s string) (NotificationType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "UPDATED", string(URLUpdated):
		return URLUpdated, nil
	case "DELETED", string(URLDeleted):
		return URLDeleted, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidNotificationType, s)
	}
}

// Config configures a Client.
type Config struct {
	Account ServiceAccount
	// Endpoint overrides DefaultEndpoint.
	Endpoint string
	// Timeout bounds each call. Zero means DefaultTimeout.
	Timeout time.Duration
	// HTTPClient is used for both the token exchange and submissions.
	HTTPClient *http.Client
	// Now is the clock used for assertion timestamps.
	Now func() time.Time
}

// Notification is the metadata the API returns for a submitted URL.
type Notification struct {
	URL          string            `json:"url"`
	LatestUpdate *NotificationInfo `json:"latestUpdate,omitempty"`
	LatestRemove *NotificationInfo `json:"latestRemove,omitempty"`
}

// NotificationInfo describes one recorded notification.
type NotificationInfo struct {
	URL        string `json:"url"`
	Type       string `json:"type"`
	NotifyTime string `json:"notifyTime"`
}

// Client is safe for concurrent use.
type Client struct {
	cfg        Config
	key        *rsa.PrivateKey
	tokenURI   string
	httpClient *http.Client
	breaker    *circuitbreaker.CircuitBreaker

	mu    sync.Mutex
	token *oauth2.Token
	group singleflight.Group
}

// NewClient parses the service-account key and returns a client.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Account.Validate(); err != nil {
		return nil, err
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(normalizeKey(cfg.Account.PrivateKey)))
	if err != nil {
		return nil, fmt.Errorf("parse service account key: %w", err)
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	tokenURI := cfg.Account.TokenURI
	if tokenURI == "" {
		tokenURI = DefaultTokenURI
	}

	breakerCfg := circuitbreaker.IndexingAPIConfig()
	breakerCfg.IsSuccessful = isClientSide

	return &Client{
		cfg:        cfg,
		key:        key,
		tokenURI:   tokenURI,
		httpClient: httpClient,
		breaker:    circuitbreaker.New(breakerCfg),
	}, nil
}

// GetAccessToken returns a bearer token for the Indexing API, exchanging a new
// signed assertion when the cached one is missing or about to expire.
func (c *Client) GetAccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.token.Valid() {
		tok := c.token.AccessToken
		c.mu.Unlock()
		return tok, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do("token", func() (any, error) {
		c.mu.Lock()
		if c.token.Valid() {
			tok := c.token
			c.mu.Unlock()
			return tok, nil
		}
		c.mu.Unlock()

		tok, err := c.exchange(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.token = tok
		c.mu.Unlock()
		return tok, nil
	})
	if err != nil {
		return "", err
	}
	return v.(*oauth2.Token).AccessToken, nil
}

// SubmitURL announces that pageURL was updated or deleted.
// On failure the remote error body is returned verbatim inside *APIError.
func (c *Client) SubmitURL(ctx context.Context, pageURL string, typ NotificationType) (Notification, error) {
	if typ != URLUpdated && typ != URLDeleted {
		return Notification{}, ErrInvalidNotificationType
	}
	accessToken, err := c.GetAccessToken(ctx)
	if err != nil {
		return Notification{}, fmt.Errorf("get access token: %w", err)
	}

	payload, err := json.Marshal(map[string]string{"url": pageURL, "type": string(typ)})
	if err != nil {
		return Notification{}, fmt.Errorf("marshal notification: %w", err)
	}

	body, err := c.do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}).SetAuthHeader(req)
		return req, nil
	})
	if err != nil {
		if statusCode(err) == http.StatusUnauthorized {
			c.invalidateToken()
		}
		return Notification{}, fmt.Errorf("submit %s: %w", pageURL, err)
	}

	var out struct {
		Metadata Notification `json:"urlNotificationMetadata"`
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &out); err != nil {
			return Notification{}, fmt.Errorf("decode notification: %w", err)
		}
	}
	if out.Metadata.URL == "" {
		out.Metadata.URL = pageURL
	}
	return out.Metadata, nil
}

func (c *Client) invalidateToken() {
	c.mu.Lock()
	c.token = nil
	c.mu.Unlock()
}

// signAssertion builds the RS256 JWT presented to the token endpoint.
func (c *Client) signAssertion() (string, error) {
	now := c.cfg.Now()
	claims := jwt.MapClaims{
		"iss":   c.cfg.Account.ClientEmail,
		"scope": Scope,
		"aud":   c.tokenURI,
		"iat":   now.Unix(),
		"exp":   now.Add(assertionLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if c.cfg.Account.PrivateKeyID != "" {
		token.Header["kid"] = c.cfg.Account.PrivateKeyID
	}
	signed, err := token.SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("sign assertion: %w", err)
	}
	return signed, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (c *Client) exchange(ctx context.Context) (*oauth2.Token, error) {
	assertion, err := c.signAssertion()
	if err != nil {
		return nil, err
	}
	form := url.Values{
		"grant_type": {grantTypeJWTBearer},
		"assertion":  {assertion},
	}

	body, err := c.do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURI, strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("token exchange: decode: %w", err)
	}
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("token exchange: response has no access_token")
	}
	tok := &oauth2.Token{AccessToken: tr.AccessToken, TokenType: tr.TokenType}
	if tr.ExpiresIn > 0 {
		tok.Expiry = c.cfg.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}
	return tok, nil
}

// do runs one request under the per-call deadline and the circuit breaker and
// returns the response body of a 2xx response.
func (c *Client) do(ctx context.Context, build func(context.Context) (*http.Request, error)) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	return circuitbreaker.Run(c.breaker, func() ([]byte, error) {
		req, err := build(ctx)
		if err != nil {
			return nil, fmt.Errorf("create http request: %w", err)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("execute http request: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
		if err != nil {
			return nil, fmt.Errorf("read response body: %w", err)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
		}
		return body, nil
	})
}

func statusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

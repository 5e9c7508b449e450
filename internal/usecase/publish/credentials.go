package publish

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"adsnow-blog/internal/infra/github"
	"adsnow-blog/internal/observability/metrics"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	// DefaultCredentialTTL is how long a verified token skips GET /user.
	DefaultCredentialTTL = 10 * time.Minute
	// DefaultCredentialCacheSize bounds the number of cached tokens.
	DefaultCredentialCacheSize = 64
)

// CredentialCache remembers tokens that GitHub accepted recently.
// Tokens are never stored, only their SHA-256. Entries expire after the TTL
// and the least recently used entry is evicted when the cache is full.
// It is safe for concurrent use.
type CredentialCache struct {
	lru *expirable.LRU[string, github.User]
}

// NewCredentialCache creates a cache. Non-positive arguments select the defaults.
func NewCredentialCache(size int, ttl time.Duration) *CredentialCache {
	if size <= 0 {
		size = DefaultCredentialCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCredentialTTL
	}
	return &CredentialCache{lru: expirable.NewLRU[string, github.User](size, nil, ttl)}
}

// Get returns the user a token was verified as.
func (c *CredentialCache) Get(token string) (github.User, bool) {
	user, ok := c.lru.Get(credentialKey(token))
	metrics.RecordCredentialCache(ok)
	return user, ok
}

// Add marks token as verified.
func (c *CredentialCache) Add(token string, user github.User) {
	c.lru.Add(credentialKey(token), user)
}

// Remove forgets token, e.g. after GitHub rejected it.
func (c *CredentialCache) Remove(token string) {
	c.lru.Remove(credentialKey(token))
}

// Len returns the number of live entries.
func (c *CredentialCache) Len() int {
	return c.lru.Len()
}

func credentialKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

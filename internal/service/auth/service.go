// Package auth authenticates the blog administrator and issues the short-lived
// HS256 tokens the admin panel sends on mutating requests.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// RoleAdmin is the only role. It is carried in the token so a viewer role
	// can be added without changing the wire format.
	RoleAdmin = "admin"

	// DefaultTokenTTL is the lifetime of an issued token.
	DefaultTokenTTL = time.Hour

	minPasswordLength = 12
	minSecretLength   = 32
	issuer            = "adsnow-blog"
)

var (
	// ErrInvalidCredentials is returned for any username or password mismatch.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken covers malformed, expired and wrongly signed tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// Credentials is a login attempt.
type Credentials struct {
	Username string
	Password string
}

// Config holds the administrator account and the token signing secret.
type Config struct {
	AdminUser     string
	AdminPassword string
	Secret        string
	TokenTTL      time.Duration
}

// Claims are the JWT claims of an admin token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Service validates credentials and tokens.
type Service struct {
	cfg Config
	now func() time.Time
}

// NewService validates cfg and returns a Service.
func NewService(cfg Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	return &Service{cfg: cfg, now: time.Now}, nil
}

// Validate rejects an empty account, a weak password and a short secret.
func (c Config) Validate() error {
	if c.AdminUser == "" {
		return fmt.Errorf("auth config: ADMIN_USER must not be empty")
	}
	if c.AdminPassword == "" {
		return fmt.Errorf("auth config: ADMIN_USER_PASSWORD must not be empty")
	}
	if len(c.AdminPassword) < minPasswordLength {
		return fmt.Errorf("auth config: ADMIN_USER_PASSWORD must be at least %d characters", minPasswordLength)
	}
	if IsWeakPassword(c.AdminPassword) {
		return fmt.Errorf("auth config: ADMIN_USER_PASSWORD must not be based on a common password")
	}
	if len(c.Secret) < minSecretLength {
		return fmt.Errorf("auth config: JWT_SECRET must be at least %d characters", minSecretLength)
	}
	return nil
}

// Authenticate compares creds with the administrator account in constant time.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	userMatch := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(s.cfg.AdminUser)) == 1
	passMatch := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(s.cfg.AdminPassword)) == 1
	if !userMatch || !passMatch {
		return ErrInvalidCredentials
	}
	return nil
}

// IssueToken signs a token for subject and returns it with its expiry.
func (s *Service) IssueToken(subject string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.cfg.TokenTTL)
	claims := Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("IssueToken: %w", err)
	}
	return signed, exp, nil
}

// ParseToken verifies signature, algorithm, issuer and expiry.
func (s *Service) ParseToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) { return []byte(s.cfg.Secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Role != RoleAdmin {
		return nil, fmt.Errorf("%w: unexpected role %q", ErrInvalidToken, claims.Role)
	}
	return claims, nil
}

var weakPasswords = []string{
	"admin", "password", "123456", "secret", "qwerty", "letmein",
	"welcome", "adsnow", "changeme", "default", "root", "test",
}

// IsWeakPassword reports passwords built on a common word, a repeated
// character or a plain digit run.
func IsWeakPassword(pass string) bool {
	if pass == "" {
		return true
	}
	lower := strings.ToLower(pass)
	for _, w := range weakPasswords {
		// "admin1234567890" is still weak; a long passphrase starting with "test" is not
		if lower == w || (strings.HasPrefix(lower, w) && len(pass) < minPasswordLength+5) {
			return true
		}
	}
	if strings.Count(lower, lower[:1]) == len(lower) {
		return true
	}
	return strings.Trim(lower, "0123456789") == ""
}

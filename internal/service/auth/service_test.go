package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef-test"

func validConfig() Config {
	return Config{
		AdminUser:     "editor@adsnow.ro",
		AdminPassword: "Campanie-Toamna-2026!",
		Secret:        testSecret,
	}
}

func newTestService(t *testing.T, now time.Time) *Service {
	t.Helper()
	s, err := NewService(validConfig())
	require.NoError(t, err)
	s.now = func() time.Time { return now }
	return s
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "empty user", mutate: func(c *Config) { c.AdminUser = "" }, wantErr: "ADMIN_USER must not be empty"},
		{name: "empty password", mutate: func(c *Config) { c.AdminPassword = "" }, wantErr: "ADMIN_USER_PASSWORD must not be empty"},
		{name: "short password", mutate: func(c *Config) { c.AdminPassword = "Short-1" }, wantErr: "at least 12"},
		{name: "weak prefix", mutate: func(c *Config) { c.AdminPassword = "password1234" }, wantErr: "common password"},
		{name: "digits only", mutate: func(c *Config) { c.AdminPassword = "904512378815" }, wantErr: "common password"},
		{name: "repeated char", mutate: func(c *Config) { c.AdminPassword = "zzzzzzzzzzzzzz" }, wantErr: "common password"},
		{name: "short secret", mutate: func(c *Config) { c.Secret = "too-short" }, wantErr: "JWT_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIsWeakPassword(t *testing.T) {
	assert.True(t, IsWeakPassword(""))
	assert.True(t, IsWeakPassword("Admin"))
	assert.True(t, IsWeakPassword("admin1234567"))
	assert.False(t, IsWeakPassword("testing-is-a-long-passphrase"))
	assert.False(t, IsWeakPassword("Campanie-Toamna-2026!"))
}

func TestService_Authenticate(t *testing.T) {
	s := newTestService(t, time.Now())

	tests := []struct {
		name  string
		creds Credentials
		err   error
	}{
		{name: "match", creds: Credentials{Username: "editor@adsnow.ro", Password: "Campanie-Toamna-2026!"}},
		{name: "wrong password", creds: Credentials{Username: "editor@adsnow.ro", Password: "Campanie-Toamna-2025!"}, err: ErrInvalidCredentials},
		{name: "wrong user", creds: Credentials{Username: "admin", Password: "Campanie-Toamna-2026!"}, err: ErrInvalidCredentials},
		{name: "empty", creds: Credentials{}, err: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Authenticate(context.Background(), tt.creds)
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestService_Authenticate_CanceledContext(t *testing.T) {
	s := newTestService(t, time.Now())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Authenticate(ctx, Credentials{Username: "editor@adsnow.ro", Password: "Campanie-Toamna-2026!"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_IssueAndParse(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	s := newTestService(t, now)

	token, exp, err := s.IssueToken("editor@adsnow.ro")
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), exp)
	assert.Equal(t, 3, len(strings.Split(token, ".")))

	claims, err := s.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "editor@adsnow.ro", claims.Subject)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "adsnow-blog", claims.Issuer)
}

func TestService_ParseToken_Rejects(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	s := newTestService(t, now)

	valid, _, err := s.IssueToken("editor@adsnow.ro")
	require.NoError(t, err)

	sign := func(method jwt.SigningMethod, key any, claims jwt.Claims) string {
		tok, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return tok
	}
	base := func() Claims {
		return Claims{Role: RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "editor@adsnow.ro",
			Issuer:    "adsnow-blog",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}}
	}

	expired := base()
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))
	wrongRole := base()
	wrongRole.Role = "viewer"
	wrongIssuer := base()
	wrongIssuer.Issuer = "someone-else"
	noExpiry := base()
	noExpiry.ExpiresAt = nil

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not.a.token"},
		{name: "tampered", token: valid[:len(valid)-2] + "xx"},
		{name: "other secret", token: sign(jwt.SigningMethodHS256, []byte("another-secret-another-secret-xx"), base())},
		{name: "alg none", token: sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, base())},
		{name: "HS512", token: sign(jwt.SigningMethodHS512, []byte(testSecret), base())},
		{name: "expired", token: sign(jwt.SigningMethodHS256, []byte(testSecret), expired)},
		{name: "no expiry", token: sign(jwt.SigningMethodHS256, []byte(testSecret), noExpiry)},
		{name: "wrong role", token: sign(jwt.SigningMethodHS256, []byte(testSecret), wrongRole)},
		{name: "wrong issuer", token: sign(jwt.SigningMethodHS256, []byte(testSecret), wrongIssuer)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ParseToken(tt.token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidToken))
		})
	}
}

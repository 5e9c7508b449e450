package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"adsnow-blog/internal/handler/http/auth"
	authservice "adsnow-blog/internal/service/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *authservice.Service {
	t.Helper()
	svc, err := authservice.NewService(authservice.Config{
		AdminUser:     "editor@adsnow.ro",
		AdminPassword: "Campanie-Toamna-2026!",
		Secret:        "0123456789abcdef0123456789abcdef-test",
	})
	require.NoError(t, err)
	return svc
}

func login(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestTokenHandler(t *testing.T) {
	h := auth.TokenHandler(newService(t))

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{name: "valid credentials", body: `{"username":"editor@adsnow.ro","password":"Campanie-Toamna-2026!"}`, wantCode: http.StatusOK},
		{name: "wrong password", body: `{"username":"editor@adsnow.ro","password":"nope-nope-nope"}`, wantCode: http.StatusUnauthorized},
		{name: "missing password", body: `{"username":"editor@adsnow.ro"}`, wantCode: http.StatusBadRequest},
		{name: "malformed json", body: `{"username":`, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := login(t, h, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestTokenHandler_IssuedTokenOpensAdminRoutes(t *testing.T) {
	svc := newService(t)

	rec := login(t, auth.TokenHandler(svc), `{"username":"editor@adsnow.ro","password":"Campanie-Toamna-2026!"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token     string `json:"token"`
		ExpiresAt string `json:"expiresAt"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.ExpiresAt)

	var user string
	protected := auth.Require(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user = auth.UserFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodDelete, "/api/posts/3", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	out := httptest.NewRecorder()
	protected.ServeHTTP(out, req)

	assert.Equal(t, http.StatusNoContent, out.Code)
	assert.Equal(t, "editor@adsnow.ro", user)
}

func TestRequire_Rejects(t *testing.T) {
	svc := newService(t)
	called := false
	protected := auth.Require(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "basic scheme", header: "Basic ZWRpdG9yOnB3"},
		{name: "empty bearer", header: "Bearer "},
		{name: "garbage token", header: "Bearer abc.def.ghi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called = false
			req := httptest.NewRequest(http.MethodPut, "/api/posts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}

func TestUserFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", auth.UserFromContext(req.Context()))
}

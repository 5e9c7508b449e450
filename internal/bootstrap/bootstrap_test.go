package bootstrap

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"adsnow-blog/internal/config"
	"adsnow-blog/internal/extractor"
	"adsnow-blog/internal/feed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serviceAccountJSON(t *testing.T) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	pemKey := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})

	data, err := json.Marshal(map[string]string{
		"type":         "service_account",
		"client_email": "indexer@adsnow.iam.gserviceaccount.com",
		"private_key":  string(pemKey),
		"token_uri":    "https://oauth2.googleapis.com/token",
	})
	require.NoError(t, err)
	return string(data)
}

func TestExtractorOptions(t *testing.T) {
	opts := ExtractorOptions(config.SiteConfig{DefaultAuthor: "Ana Pop"})

	assert.Equal(t, "Ana Pop", opts.DefaultAuthor)
	assert.Equal(t, extractor.DefaultCategory, opts.DefaultCategory)
	assert.Equal(t, extractor.DefaultImage, opts.DefaultImage)
}

func TestSite(t *testing.T) {
	site := Site(config.SiteConfig{URL: "https://adsnow.ro", Name: "AdsNow", Language: "ro"})
	assert.Equal(t, feed.Site{URL: "https://adsnow.ro", Name: "AdsNow", Language: "ro"}, site)
}

func TestImporter(t *testing.T) {
	t.Run("disabled returns a nil interface", func(t *testing.T) {
		imp, err := Importer(config.ImportConfig{Enabled: false})
		require.NoError(t, err)
		assert.True(t, imp == nil)
	})

	t.Run("enabled", func(t *testing.T) {
		imp, err := Importer(config.ImportConfig{Enabled: true, Timeout: 5 * time.Second, DenyPrivateIPs: true})
		require.NoError(t, err)
		assert.NotNil(t, imp)
	})

	t.Run("invalid body limit", func(t *testing.T) {
		_, err := Importer(config.ImportConfig{Enabled: true, MaxBodyBytes: 10})
		assert.Error(t, err)
	})
}

func TestIndexer(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		svc, err := Indexer(config.Config{Site: config.SiteConfig{URL: "https://adsnow.ro"}})
		require.NoError(t, err)
		assert.False(t, svc.Enabled())
		assert.Equal(t, "https://adsnow.ro", svc.SiteURL())
	})

	t.Run("inline key", func(t *testing.T) {
		cfg := config.Config{
			Site:     config.SiteConfig{URL: "https://adsnow.ro"},
			Indexing: config.IndexingConfig{CredentialsJSON: serviceAccountJSON(t)},
		}
		svc, err := Indexer(cfg)
		require.NoError(t, err)
		assert.True(t, svc.Enabled())
	})

	t.Run("key file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sa.json")
		require.NoError(t, os.WriteFile(path, []byte(serviceAccountJSON(t)), 0o600))

		svc, err := Indexer(config.Config{
			Site:     config.SiteConfig{URL: "https://adsnow.ro"},
			Indexing: config.IndexingConfig{CredentialsFile: path},
		})
		require.NoError(t, err)
		assert.True(t, svc.Enabled())
	})

	t.Run("missing key file", func(t *testing.T) {
		_, err := Indexer(config.Config{
			Indexing: config.IndexingConfig{CredentialsFile: filepath.Join(t.TempDir(), "missing.json")},
		})
		assert.Error(t, err)
	})

	t.Run("incomplete key", func(t *testing.T) {
		_, err := Indexer(config.Config{
			Indexing: config.IndexingConfig{CredentialsJSON: `{"client_email":"x@y"}`},
		})
		assert.ErrorContains(t, err, "private_key")
	})
}

func TestGitHubAndPipeline(t *testing.T) {
	gh, err := GitHub(config.GitHubConfig{})
	require.NoError(t, err)
	assert.Nil(t, gh)
	assert.Nil(t, Pipeline(config.GitHubConfig{}, gh, nil))

	cfg := config.GitHubConfig{Owner: "adsnow", Repo: "site", Branch: "main", Verify: true, VerifyDelay: time.Second}
	gh, err = GitHub(cfg)
	require.NoError(t, err)
	require.NotNil(t, gh)
	assert.NotNil(t, Pipeline(cfg, gh, nil))
}

func TestSitemapPath(t *testing.T) {
	assert.Equal(t, feed.SitemapPath, SitemapPath(config.GitHubConfig{}))
	assert.Equal(t, "static/sitemap.xml", SitemapPath(config.GitHubConfig{SitemapPath: "static/sitemap.xml"}))
}

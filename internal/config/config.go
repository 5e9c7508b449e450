// Package config loads the blog backend configuration.
//
// Sources, lowest precedence first: built-in defaults, the YAML site file
// (SITE_CONFIG, default config/site.yaml), a .env file (ENV_FILE, default
// .env) and the process environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultSiteConfig is the site file read when SITE_CONFIG is unset.
	DefaultSiteConfig = "config/site.yaml"
	// DefaultContentFile is the local content store.
	DefaultContentFile = "data/blog-posts.json"
)

// Config is the full runtime configuration.
type Config struct {
	Addr            string
	Version         string
	ContentFile     string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	// TraceSampleRatio is the fraction of root spans sampled, 0 to 1.
	TraceSampleRatio float64
	// AuthRateLimit is the number of token requests allowed per IP per minute.
	AuthRateLimit int

	Site     SiteConfig
	GitHub   GitHubConfig
	Indexing IndexingConfig
	Auth     AuthConfig
	Import   ImportConfig
}

// SiteConfig describes the public blog. Empty defaults keep the extractor's
// built-in fallbacks.
type SiteConfig struct {
	URL             string
	Name            string
	Description     string
	Language        string
	RSSItems        int
	DefaultAuthor   string
	DefaultCategory string
	DefaultImage    string
}

// GitHubConfig is the content repository the publish pipeline writes to.
type GitHubConfig struct {
	BaseURL string
	Owner   string
	Repo    string
	Branch  string
	// Token is only used by the CLI. The server takes the token per request.
	Token         string
	ContentPath   string
	SitemapPath   string
	Timeout       time.Duration
	CommitMessage string
	Verify        bool
	VerifyDelay   time.Duration
	CredentialTTL time.Duration
}

// Enabled reports whether a repository is configured.
func (g GitHubConfig) Enabled() bool {
	return g.Owner != "" && g.Repo != ""
}

// Target returns "owner/repo@branch".
func (g GitHubConfig) Target() string {
	if !g.Enabled() {
		return ""
	}
	branch := g.Branch
	if branch == "" {
		branch = "main"
	}
	return g.Owner + "/" + g.Repo + "@" + branch
}

// IndexingConfig holds the Google service account used for indexing.
type IndexingConfig struct {
	// CredentialsFile is a service-account key file.
	CredentialsFile string
	// CredentialsJSON is the key file content. It wins over CredentialsFile.
	CredentialsJSON string
	Interval        time.Duration
	Timeout         time.Duration
}

// Enabled reports whether a service account is configured.
func (i IndexingConfig) Enabled() bool {
	return i.CredentialsFile != "" || i.CredentialsJSON != ""
}

// AuthConfig holds the admin account and the token signing secret.
type AuthConfig struct {
	AdminUser     string
	AdminPassword string
	JWTSecret     string
	TokenTTL      time.Duration
}

// ImportConfig controls importing posts from URLs.
type ImportConfig struct {
	Enabled        bool
	Timeout        time.Duration
	MaxBodyBytes   int64
	DenyPrivateIPs bool
}

// Load reads the configuration. It does not validate it.
func Load() (*Config, error) {
	if err := LoadDotEnv(GetEnvString("ENV_FILE", ".env")); err != nil {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}
	sf, err := LoadSiteFile(GetEnvString("SITE_CONFIG", DefaultSiteConfig))
	if err != nil {
		return nil, err
	}
	return fromSources(sf), nil
}

func fromSources(sf SiteFile) *Config {
	rssItems := sf.Site.RSSItems
	if rssItems <= 0 {
		rssItems = 20
	}
	language := sf.Site.Language
	if language == "" {
		language = "ro"
	}

	return &Config{
		Addr:             GetEnvString("HTTP_ADDR", ":8080"),
		Version:          GetEnvString("VERSION", "dev"),
		ContentFile:      GetEnvString("CONTENT_FILE", DefaultContentFile),
		RequestTimeout:   GetEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout:  GetEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		TraceSampleRatio: GetEnvFloat("TRACE_SAMPLE_RATIO", 0.1),
		AuthRateLimit:    GetEnvInt("AUTH_RATE_LIMIT", 5),

		Site: SiteConfig{
			URL:             strings.TrimRight(GetEnvString("SITE_URL", sf.Site.URL), "/"),
			Name:            GetEnvString("SITE_NAME", sf.Site.Name),
			Description:     GetEnvString("SITE_DESCRIPTION", sf.Site.Description),
			Language:        GetEnvString("SITE_LANGUAGE", language),
			RSSItems:        GetEnvInt("RSS_ITEMS", rssItems),
			DefaultAuthor:   GetEnvString("DEFAULT_AUTHOR", sf.Defaults.Author),
			DefaultCategory: GetEnvString("DEFAULT_CATEGORY", sf.Defaults.Category),
			DefaultImage:    GetEnvString("DEFAULT_IMAGE", sf.Defaults.Image),
		},
		GitHub: GitHubConfig{
			BaseURL:       GetEnvString("GITHUB_API_URL", ""),
			Owner:         GetEnvString("GITHUB_OWNER", sf.GitHub.Owner),
			Repo:          GetEnvString("GITHUB_REPO", sf.GitHub.Repo),
			Branch:        GetEnvString("GITHUB_BRANCH", sf.GitHub.Branch),
			Token:         GetEnvString("GITHUB_TOKEN", ""),
			ContentPath:   GetEnvString("GITHUB_CONTENT_PATH", sf.GitHub.ContentPath),
			SitemapPath:   GetEnvString("GITHUB_SITEMAP_PATH", sf.GitHub.SitemapPath),
			Timeout:       GetEnvDuration("GITHUB_TIMEOUT", 15*time.Second),
			CommitMessage: GetEnvString("PUBLISH_COMMIT_MESSAGE", ""),
			Verify:        GetEnvBool("PUBLISH_VERIFY", true),
			VerifyDelay:   GetEnvDuration("PUBLISH_VERIFY_DELAY", 2*time.Second),
			CredentialTTL: GetEnvDuration("CREDENTIAL_CACHE_TTL", 10*time.Minute),
		},
		Indexing: IndexingConfig{
			CredentialsFile: GetEnvString("GOOGLE_APPLICATION_CREDENTIALS", ""),
			CredentialsJSON: GetEnvString("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
			Interval:        GetEnvDuration("INDEXING_INTERVAL", time.Second),
			Timeout:         GetEnvDuration("INDEXING_TIMEOUT", 15*time.Second),
		},
		Auth: AuthConfig{
			AdminUser:     GetEnvString("ADMIN_USER", ""),
			AdminPassword: GetEnvString("ADMIN_USER_PASSWORD", ""),
			JWTSecret:     GetEnvString("JWT_SECRET", ""),
			TokenTTL:      GetEnvDuration("JWT_TTL", time.Hour),
		},
		Import: ImportConfig{
			Enabled:        GetEnvBool("IMPORT_ENABLED", true),
			Timeout:        GetEnvDuration("IMPORT_TIMEOUT", 10*time.Second),
			MaxBodyBytes:   int64(GetEnvInt("IMPORT_MAX_BODY_BYTES", 5*1024*1024)),
			DenyPrivateIPs: GetEnvBool("IMPORT_DENY_PRIVATE_IPS", true),
		},
	}
}

// Validate checks the settings shared by the server and the CLI. Admin
// credentials are checked by the auth service.
func (c *Config) Validate() error {
	var errs []error

	if c.ContentFile == "" {
		errs = append(errs, errors.New("CONTENT_FILE must not be empty"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %v", c.RequestTimeout))
	}
	if c.TraceSampleRatio < 0 || c.TraceSampleRatio > 1 {
		errs = append(errs, fmt.Errorf("TRACE_SAMPLE_RATIO must be between 0 and 1, got %v", c.TraceSampleRatio))
	}
	if c.AuthRateLimit <= 0 {
		errs = append(errs, fmt.Errorf("AUTH_RATE_LIMIT must be positive, got %d", c.AuthRateLimit))
	}
	if c.Site.URL != "" {
		if err := validateOrigin(c.Site.URL); err != nil {
			errs = append(errs, fmt.Errorf("SITE_URL: %w", err))
		}
	}
	if (c.GitHub.Owner == "") != (c.GitHub.Repo == "") {
		errs = append(errs, errors.New("GITHUB_OWNER and GITHUB_REPO must be set together"))
	}
	if c.GitHub.VerifyDelay < 0 {
		errs = append(errs, fmt.Errorf("PUBLISH_VERIFY_DELAY must not be negative, got %v", c.GitHub.VerifyDelay))
	}
	if c.Indexing.Enabled() && c.Site.URL == "" {
		errs = append(errs, errors.New("SITE_URL is required when indexing is configured"))
	}
	if c.Indexing.Interval < 0 {
		errs = append(errs, fmt.Errorf("INDEXING_INTERVAL must not be negative, got %v", c.Indexing.Interval))
	}
	return errors.Join(errs...)
}

func validateOrigin(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("URL %q must have a host", raw)
	}
	if u.Path != "" && u.Path != "/" {
		return fmt.Errorf("URL %q must be an origin without a path", raw)
	}
	return nil
}

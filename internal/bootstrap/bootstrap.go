// Package bootstrap turns a loaded config.Config into the components shared
// by the API server and adsnowctl.
package bootstrap

import (
	"fmt"

	"adsnow-blog/internal/config"
	"adsnow-blog/internal/extractor"
	"adsnow-blog/internal/feed"
	"adsnow-blog/internal/infra/github"
	"adsnow-blog/internal/infra/importer"
	"adsnow-blog/internal/infra/indexing"
	"adsnow-blog/internal/usecase/index"
	postUC "adsnow-blog/internal/usecase/post"
	publishUC "adsnow-blog/internal/usecase/publish"
)

const userAgent = "adsnow-blog"

// Site returns the feed description of the public blog.
func Site(cfg config.SiteConfig) feed.Site {
	return feed.Site{
		URL:         cfg.URL,
		Name:        cfg.Name,
		Description: cfg.Description,
		Language:    cfg.Language,
	}
}

// ExtractorOptions applies the configured defaults over the built-in ones.
func ExtractorOptions(cfg config.SiteConfig) extractor.Options {
	opts := extractor.DefaultOptions()
	if cfg.DefaultAuthor != "" {
		opts.DefaultAuthor = cfg.DefaultAuthor
	}
	if cfg.DefaultCategory != "" {
		opts.DefaultCategory = cfg.DefaultCategory
	}
	if cfg.DefaultImage != "" {
		opts.DefaultImage = cfg.DefaultImage
	}
	return opts
}

// Importer returns the URL importer, or nil when importing is disabled.
// The result is a nil interface in that case, never a typed nil.
func Importer(cfg config.ImportConfig) (postUC.Importer, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	ic := importer.DefaultConfig()
	if cfg.Timeout > 0 {
		ic.Timeout = cfg.Timeout
	}
	if cfg.MaxBodyBytes > 0 {
		ic.MaxBodySize = cfg.MaxBodyBytes
	}
	ic.DenyPrivateIPs = cfg.DenyPrivateIPs
	imp, err := importer.New(ic)
	if err != nil {
		return nil, fmt.Errorf("importer: %w", err)
	}
	return imp, nil
}

// ServiceAccount reads the configured service-account key. The inline JSON
// wins over the key file.
func ServiceAccount(cfg config.IndexingConfig) (indexing.ServiceAccount, error) {
	if cfg.CredentialsJSON != "" {
		return indexing.ParseServiceAccount([]byte(cfg.CredentialsJSON))
	}
	return indexing.LoadServiceAccount(cfg.CredentialsFile)
}

// Indexer returns the indexing service. Without a service account the
// service is still returned; its submissions fail with index.ErrNotConfigured.
func Indexer(cfg config.Config) (*index.Service, error) {
	if !cfg.Indexing.Enabled() {
		return index.NewService(nil, cfg.Site.URL, cfg.Indexing.Interval), nil
	}
	sa, err := ServiceAccount(cfg.Indexing)
	if err != nil {
		return nil, err
	}
	client, err := indexing.NewClient(indexing.Config{
		Account: sa,
		Timeout: cfg.Indexing.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return index.NewService(client, cfg.Site.URL, cfg.Indexing.Interval), nil
}

// GitHub returns the content repository client, or nil when no repository
// is configured.
func GitHub(cfg config.GitHubConfig) (*github.Client, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	return github.NewClient(github.Config{
		BaseURL:   cfg.BaseURL,
		Owner:     cfg.Owner,
		Repo:      cfg.Repo,
		Branch:    cfg.Branch,
		Token:     cfg.Token,
		Timeout:   cfg.Timeout,
		UserAgent: userAgent,
	})
}

// Pipeline returns the publish pipeline bound to gh, or nil when gh is nil.
func Pipeline(cfg config.GitHubConfig, gh *github.Client, indexer *index.Service) *publishUC.Pipeline {
	if gh == nil {
		return nil
	}
	pc := publishUC.DefaultConfig()
	if cfg.ContentPath != "" {
		pc.ContentPath = cfg.ContentPath
	}
	if cfg.CommitMessage != "" {
		pc.CommitMessage = cfg.CommitMessage
	}
	pc.Verify = cfg.Verify
	pc.VerifyDelay = cfg.VerifyDelay
	if cfg.Timeout > 0 {
		pc.CallTimeout = cfg.Timeout
	}

	connect := func(token string) publishUC.Committer { return gh.WithToken(token) }
	credentials := publishUC.NewCredentialCache(publishUC.DefaultCredentialCacheSize, cfg.CredentialTTL)
	return publishUC.NewPipeline(connect, indexer, credentials, pc)
}

// SitemapPath returns the repository path of the sitemap.
func SitemapPath(cfg config.GitHubConfig) string {
	if cfg.SitemapPath != "" {
		return cfg.SitemapPath
	}
	return feed.SitemapPath
}

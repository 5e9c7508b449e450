package publish

import (
	"adsnow-blog/internal/domain/entity"
	"adsnow-blog/internal/feed"
)

// SitemapCommitMessage is the commit message of the sitemap artifact.
const SitemapCommitMessage = "Update sitemap"

// SitemapArtifact renders the sitemap of posts for site. An empty path
// selects feed.SitemapPath.
func SitemapArtifact(site feed.Site, path string, posts []entity.Post) (*Artifact, error) {
	if path == "" {
		path = feed.SitemapPath
	}
	content, err := feed.Sitemap(site, posts)
	if err != nil {
		return nil, err
	}
	return &Artifact{Path: path, Content: content, Message: SitemapCommitMessage}, nil
}

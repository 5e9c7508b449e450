// Package feed renders the sitemap and the RSS feed of the published posts.
package feed

import (
	"sort"
	"strings"

	"adsnow-blog/internal/domain/entity"
)

// DefaultRSSItems bounds the number of posts in the RSS feed.
const DefaultRSSItems = 20

// Site describes the public blog.
type Site struct {
	// URL is the site origin, e.g. https://adsnow.ro.
	URL         string
	Name        string
	Description string
	Language    string
}

func (s Site) base() string {
	return strings.TrimRight(s.URL, "/")
}

// published returns the published posts, newest first. Posts with the same
// date keep their list order.
func published(posts []entity.Post) []entity.Post {
	out := make([]entity.Post, 0, len(posts))
	for _, p := range posts {
		if p.Published {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt().After(out[j].PublishedAt())
	})
	return out
}

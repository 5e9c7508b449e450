// Package entity defines the core domain entities and validation logic for the blog.
// The only persisted entity is Post; everything else in the system is glue around it.
package entity

import (
	"strings"
	"time"
)

// DateLayout is the ISO date format used for Post.Date.
const DateLayout = "2006-01-02"

// SEO holds the search-engine metadata of a post.
type SEO struct {
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	Keywords        string `json:"keywords"`
}

// Post represents a blog post as stored in the content store.
// JSON field names match the content store wire format.
type Post struct {
	ID        int64    `json:"id"`
	Slug      string   `json:"slug"`
	Title     string   `json:"title"`
	Excerpt   string   `json:"excerpt"`
	Content   string   `json:"content"`
	Image     string   `json:"image"`
	Date      string   `json:"date"`
	Category  string   `json:"category"`
	Author    string   `json:"author"`
	Tags      []string `json:"tags"`
	SEO       SEO      `json:"seo"`
	Published bool     `json:"published"`
	Featured  bool     `json:"featured"`
}

// NextID returns max(existing ids) + 1, or 1 for an empty list.
func NextID(posts []Post) int64 {
	var maxID int64
	for _, p := range posts {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID + 1
}

// URL returns the public URL of the post under the given site origin.
func (p Post) URL(siteURL string) string {
	return strings.TrimRight(siteURL, "/") + "/blog/" + p.Slug
}

// PublishedAt parses Date. The zero time is returned when Date is empty or malformed.
func (p Post) PublishedAt() time.Time {
	t, err := time.Parse(DateLayout, p.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Clone returns a deep copy of the post so callers can mutate it freely.
func (p Post) Clone() Post {
	c := p
	if p.Tags != nil {
		c.Tags = append([]string(nil), p.Tags...)
	}
	return c
}

// ClonePosts deep-copies a post list.
func ClonePosts(posts []Post) []Post {
	if posts == nil {
		return nil
	}
	out := make([]Post, len(posts))
	for i, p := range posts {
		out[i] = p.Clone()
	}
	return out
}

// FindBySlug returns the index of the post with the given slug, or -1.
func FindBySlug(posts []Post, slug string) int {
	for i, p := range posts {
		if p.Slug == slug {
			return i
		}
	}
	return -1
}

// FindByID returns the index of the post with the given id, or -1.
func FindByID(posts []Post, id int64) int {
	for i, p := range posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

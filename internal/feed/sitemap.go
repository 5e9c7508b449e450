package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"adsnow-blog/internal/domain/entity"
)

// SitemapPath is the repository path the sitemap is published to.
const SitemapPath = "public/sitemap.xml"

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Sitemap renders a sitemaps.org document with the home page, the blog index
// and every published post.
func Sitemap(site Site, posts []entity.Post) ([]byte, error) {
	base := site.base()
	pub := published(posts)

	blogLastMod := ""
	if len(pub) > 0 {
		blogLastMod = pub[0].Date
	}

	urls := []sitemapURL{
		{Loc: base + "/", ChangeFreq: "weekly", Priority: "1.0"},
		{Loc: base + "/blog", LastMod: blogLastMod, ChangeFreq: "daily", Priority: "0.9"},
	}
	for _, p := range pub {
		priority := "0.7"
		if p.Featured {
			priority = "0.8"
		}
		urls = append(urls, sitemapURL{
			Loc:        p.URL(base),
			LastMod:    p.Date,
			ChangeFreq: "monthly",
			Priority:   priority,
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}); err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

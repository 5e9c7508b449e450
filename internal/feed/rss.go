package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"

	"adsnow-blog/internal/domain/entity"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language,omitempty"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	Author      string   `xml:"author,omitempty"`
	Categories  []string `xml:"category"`
	PubDate     string   `xml:"pubDate,omitempty"`
	GUID        rssGUID  `xml:"guid"`
}

type rssGUID struct {
	Value       string `xml:",chardata"`
	IsPermaLink bool   `xml:"isPermaLink,attr"`
}

// RSS renders an RSS 2.0 feed of the newest published posts.
// limit <= 0 means DefaultRSSItems.
func RSS(site Site, posts []entity.Post, limit int) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultRSSItems
	}
	base := site.base()

	pub := published(posts)
	if len(pub) > limit {
		pub = pub[:limit]
	}

	items := make([]rssItem, 0, len(pub))
	for _, p := range pub {
		pubDate := ""
		if t := p.PublishedAt(); !t.IsZero() {
			pubDate = t.Format(time.RFC1123Z)
		}
		var categories []string
		if p.Category != "" {
			categories = append(categories, p.Category)
		}
		categories = append(categories, p.Tags...)

		link := p.URL(base)
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        link,
			Description: p.Excerpt,
			Author:      p.Author,
			Categories:  categories,
			PubDate:     pubDate,
			GUID:        rssGUID{Value: link, IsPermaLink: true},
		})
	}

	channel := rssChannel{
		Title:       site.Name,
		Link:        base + "/blog",
		Description: site.Description,
		Language:    site.Language,
		Items:       items,
	}
	if len(items) > 0 {
		channel.LastBuildDate = items[0].PubDate
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(rssXML{Version: "2.0", Channel: channel}); err != nil {
		return nil, fmt.Errorf("encode rss: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

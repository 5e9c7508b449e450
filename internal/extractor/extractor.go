// Package extractor derives post metadata from a raw HTML document.
//
// Extraction walks the parsed token tree (goquery over x/net/html) instead of
// scanning with regular expressions. Every field is resolved independently
// through an ordered list of candidates and ends in a configured default, so
// Extract never fails, whatever the input looks like.
package extractor

import (
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"adsnow-blog/internal/domain/entity"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

const (
	// DefaultTitle is used when the document has neither <title> nor <h1>.
	DefaultTitle = "Articol nou"
	// DefaultImage is the placeholder cover image.
	DefaultImage = "/images/blog/placeholder.jpg"
	// DefaultCategory is assigned when the document declares no category.
	DefaultCategory = "Marketing Digital"
	// DefaultAuthor is assigned when the document declares no author.
	DefaultAuthor = "Echipa AdsNow"

	excerptLimit     = 200
	descriptionLimit = 160
	truncationSuffix = "..."
)

// Options configures the fallbacks used by the Extractor.
type Options struct {
	DefaultTitle     string
	DefaultImage     string
	DefaultCategory  string
	DefaultAuthor    string
	ExcerptLimit     int
	DescriptionLimit int

	// Now returns the extraction time. Used for the date fallback.
	Now func() time.Time
}

// DefaultOptions returns the fallbacks used by the admin panel.
func DefaultOptions() Options {
	return Options{
		DefaultTitle:     DefaultTitle,
		DefaultImage:     DefaultImage,
		DefaultCategory:  DefaultCategory,
		DefaultAuthor:    DefaultAuthor,
		ExcerptLimit:     excerptLimit,
		DescriptionLimit: descriptionLimit,
		Now:              time.Now,
	}
}

// Metadata is the result of extracting a document.
type Metadata struct {
	Title           Field[string]
	Slug            Field[string]
	Excerpt         Field[string]
	MetaDescription Field[string]
	Image           Field[string]
	Category        Field[string]
	Author          Field[string]
	Tags            Field[[]string]
	Keywords        Field[string]
	Date            Field[string]
}

// Extractor extracts Metadata from HTML. It is safe for concurrent use.
type Extractor struct {
	opts  Options
	plain *bluemonday.Policy
}

// New creates an Extractor. Zero-valued options fall back to DefaultOptions.
func New(opts Options) *Extractor {
	def := DefaultOptions()
	if opts.DefaultTitle == "" {
		opts.DefaultTitle = def.DefaultTitle
	}
	if opts.DefaultImage == "" {
		opts.DefaultImage = def.DefaultImage
	}
	if opts.DefaultCategory == "" {
		opts.DefaultCategory = def.DefaultCategory
	}
	if opts.DefaultAuthor == "" {
		opts.DefaultAuthor = def.DefaultAuthor
	}
	if opts.ExcerptLimit <= 0 {
		opts.ExcerptLimit = def.ExcerptLimit
	}
	if opts.DescriptionLimit <= 0 {
		opts.DescriptionLimit = def.DescriptionLimit
	}
	if opts.Now == nil {
		opts.Now = def.Now
	}
	return &Extractor{opts: opts, plain: bluemonday.StrictPolicy()}
}

// Extract returns the metadata of rawHTML. If explicitSlug is non-empty it is
// used (normalized) instead of deriving the slug from the title.
func (e *Extractor) Extract(rawHTML, explicitSlug string) Metadata {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		// strings.Reader never fails; an empty document keeps Extract total.
		doc, _ = goquery.NewDocumentFromReader(strings.NewReader(""))
	}

	var m Metadata
	m.Title = e.title(doc)
	m.Slug = e.slug(m.Title.Value, explicitSlug)

	description, hasDescription := e.metaByName(doc, "description")
	firstParagraph := firstText(doc, "p")

	switch {
	case hasDescription:
		m.Excerpt = found(truncate(description, e.opts.ExcerptLimit))
		m.MetaDescription = found(truncate(description, e.opts.DescriptionLimit))
	case firstParagraph != "":
		m.Excerpt = found(truncate(firstParagraph, e.opts.ExcerptLimit))
		m.MetaDescription = found(truncate(firstParagraph, e.opts.DescriptionLimit))
	default:
		m.Excerpt = fallback("")
		m.MetaDescription = fallback("")
	}

	m.Image = e.image(doc)

	if category, ok := e.metaByName(doc, "category"); ok {
		m.Category = found(category)
	} else {
		m.Category = fallback(e.opts.DefaultCategory)
	}

	if author, ok := e.metaByName(doc, "author"); ok {
		m.Author = found(author)
	} else {
		m.Author = fallback(e.opts.DefaultAuthor)
	}

	if raw, ok := e.metaByName(doc, "tags"); ok {
		m.Tags = found(SplitTags(raw))
	} else {
		m.Tags = fallback([]string{})
	}

	if keywords, ok := e.metaByName(doc, "keywords"); ok {
		m.Keywords = found(keywords)
	} else {
		m.Keywords = fallback(strings.Join(m.Tags.Value, ","))
	}

	m.Date = e.date(doc)

	return m
}

// Post builds a draft post from the metadata. ID, Published and Featured are
// left for the caller.
func (m Metadata) Post(content string) entity.Post {
	tags := append([]string{}, m.Tags.Value...)
	return entity.Post{
		Slug:     m.Slug.Value,
		Title:    m.Title.Value,
		Excerpt:  m.Excerpt.Value,
		Content:  content,
		Image:    m.Image.Value,
		Date:     m.Date.Value,
		Category: m.Category.Value,
		Author:   m.Author.Value,
		Tags:     tags,
		SEO: entity.SEO{
			MetaTitle:       m.Title.Value,
			MetaDescription: m.MetaDescription.Value,
			Keywords:        m.Keywords.Value,
		},
	}
}

// Sources maps each metadata field, by its JSON name, to "found" or "default".
func (m Metadata) Sources() map[string]string {
	return map[string]string{
		"title":           m.Title.Source.String(),
		"slug":            m.Slug.Source.String(),
		"excerpt":         m.Excerpt.Source.String(),
		"metaDescription": m.MetaDescription.Source.String(),
		"image":           m.Image.Source.String(),
		"category":        m.Category.Source.String(),
		"author":          m.Author.Source.String(),
		"tags":            m.Tags.Source.String(),
		"keywords":        m.Keywords.Source.String(),
		"date":            m.Date.Source.String(),
	}
}

func (e *Extractor) title(doc *goquery.Document) Field[string] {
	if t := firstText(doc, "title"); t != "" {
		return found(t)
	}
	if t := firstText(doc, "h1"); t != "" {
		return found(t)
	}
	return fallback(e.opts.DefaultTitle)
}

func (e *Extractor) slug(title, explicit string) Field[string] {
	if s := entity.Slugify(explicit); s != "" {
		return found(s)
	}
	return fallback(entity.Slugify(title))
}

func (e *Extractor) image(doc *goquery.Document) Field[string] {
	if og, ok := e.metaByAttr(doc, "property", "og:image"); ok {
		return found(og)
	}
	var src string
	doc.Find("img").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src = strings.TrimSpace(s.AttrOr("src", ""))
		return src == ""
	})
	if src != "" {
		return found(src)
	}
	return fallback(e.opts.DefaultImage)
}

// metaByName returns the content of the first <meta name=...> tag.
func (e *Extractor) metaByName(doc *goquery.Document, name string) (string, bool) {
	return e.metaByAttr(doc, "name", name)
}

// metaByAttr returns the cleaned content of the first <meta attr=key> tag.
// Attribute values are compared case-insensitively. Empty contents do not count.
func (e *Extractor) metaByAttr(doc *goquery.Document, attr, key string) (string, bool) {
	var content string
	var ok bool
	doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.EqualFold(strings.TrimSpace(s.AttrOr(attr, "")), key) {
			return true
		}
		content = e.cleanText(s.AttrOr("content", ""))
		ok = content != ""
		return false
	})
	return content, ok
}

// cleanText strips markup that sometimes ends up inside attribute values and
// collapses whitespace. bluemonday escapes entities, so they are decoded again.
func (e *Extractor) cleanText(s string) string {
	return collapseSpace(html.UnescapeString(e.plain.Sanitize(s)))
}

// SplitTags splits a comma-separated tag list, trimming entries and dropping empties.
func SplitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func firstText(doc *goquery.Document, selector string) string {
	var text string
	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text = collapseSpace(s.Text())
		return text == ""
	})
	return text
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate cuts s to at most limit runes, marking the cut with "...".
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	keep := limit - utf8.RuneCountInString(truncationSuffix)
	if keep < 0 {
		keep = 0
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:keep]), " ") + truncationSuffix
}

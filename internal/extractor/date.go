package extractor

import (
	"strings"
	"time"

	"adsnow-blog/internal/domain/entity"

	"github.com/PuerkitoBio/goquery"
)

// dateLayouts are tried in order when a document declares its own date.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	entity.DateLayout,
	"02.01.2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// date resolves the post date. A date declared by the document wins
// (article:published_time, <meta name="date">, then the first <time datetime>);
// otherwise the extraction day is used.
func (e *Extractor) date(doc *goquery.Document) Field[string] {
	candidates := make([]string, 0, 3)
	if v, ok := e.metaByAttr(doc, "property", "article:published_time"); ok {
		candidates = append(candidates, v)
	}
	if v, ok := e.metaByName(doc, "date"); ok {
		candidates = append(candidates, v)
	}
	if v, ok := doc.Find("time[datetime]").First().Attr("datetime"); ok {
		candidates = append(candidates, v)
	}

	for _, c := range candidates {
		if t, ok := parseDate(c); ok {
			return found(t.Format(entity.DateLayout))
		}
	}
	return fallback(e.opts.Now().Format(entity.DateLayout))
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

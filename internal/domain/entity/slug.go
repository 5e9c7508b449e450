package entity

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Slugify converts a title into a URL-safe slug.
//
// The title is lowercased, decomposed so diacritics can be dropped
// ("Ăștept" -> "astept"), and every run of characters outside [a-z0-9]
// becomes a single hyphen. Leading and trailing hyphens are never emitted.
func Slugify(title string) string {
	lower := strings.ToLower(title)

	// transform.Chain is stateful, so a fresh chain is built per call.
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripper, lower)
	if err != nil {
		folded = lower
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingHyphen := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// FallbackSlug is the slug of a post whose title has no Latin letters or
// digits to slugify.
func FallbackSlug(id int64) string {
	return "post-" + strconv.FormatInt(id, 10)
}

// IsValidSlug reports whether s is already in canonical slug form.
func IsValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

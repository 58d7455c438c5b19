package feed

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonWordRuns = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Slugify derives the natural category key from a display name: lowercase,
// diacritics stripped, non-word runs collapsed to single hyphens, edges
// trimmed.
func Slugify(name string) string {
	stripDiacritics := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	normalized, _, err := transform.String(stripDiacritics, name)
	if err != nil {
		normalized = name
	}

	slug := strings.ToLower(normalized)
	slug = nonWordRuns.ReplaceAllString(slug, "-")

	return strings.Trim(slug, "-")
}

package feed

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Availability truth tokens: single words match exactly (so "unavailable"
// stays false), phrases match as substrings to tolerate supplier wording
// around them.
var (
	truthWords   = []string{"true", "yes", "available"}
	truthPhrases = []string{"in stock", "в наявності", "є в наявності", "в наличии", "есть"}
)

// NormalizeAvailability maps the heterogeneous availability representations
// (booleans, numeric strings, locale-specific stock wording) onto a boolean.
// Anything outside the closed token set is false.
func NormalizeAvailability(value interface{}) bool {
	s := strings.ToLower(scalarString(value))
	if s == "" {
		return false
	}

	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n > 0
	}

	for _, word := range truthWords {
		if s == word {
			return true
		}
	}
	for _, phrase := range truthPhrases {
		if strings.Contains(s, phrase) {
			return true
		}
	}

	return false
}

var nonPriceChars = regexp.MustCompile(`[^0-9.,]`)

// NormalizePrice strips currency symbols and whitespace, treats a comma as
// the decimal separator, and parses the remainder as a two-digit decimal.
// Unparseable input reports ok=false; the caller decides whether the offer
// is still usable.
func NormalizePrice(value interface{}) (decimal.Decimal, bool) {
	s := nonPriceChars.ReplaceAllString(scalarString(value), "")
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" || s == "." {
		return decimal.Decimal{}, false
	}

	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}

	return price.Round(2), true
}

// NormalizePhotos trims the collected photo values, drops blanks and
// deduplicates preserving first-seen order. The first surviving URL is the
// primary image; the rest form the gallery.
func NormalizePhotos(values []interface{}) (string, []string) {
	seen := make(map[string]bool, len(values))
	var urls []string

	for _, value := range values {
		url := scalarString(value)
		if url == "" || seen[url] {
			continue
		}
		seen[url] = true
		urls = append(urls, url)
	}

	if len(urls) == 0 {
		return "", nil
	}

	return urls[0], urls[1:]
}

package textutil

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML reduces an HTML fragment to its visible text. Tags are dropped,
// entities decoded, and whitespace collapsed. Input without markup passes
// through unchanged apart from whitespace normalization.
func StripHTML(fragment string) string {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return CollapseSpaces(fragment)
	}
	return CollapseSpaces(doc.Text())
}

// CollapseSpaces trims the string and squeezes runs of whitespace (including
// newlines and tabs) into single spaces.
func CollapseSpaces(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// Truncate caps a string at max runes. Truncation never splits a rune.
func Truncate(value string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max])
}

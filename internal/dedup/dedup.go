// Package dedup removes duplicate candidate mentions within a single run:
// first by exact canonical URL, then by fuzzy normalized title across
// sources.
//
// The fuzzy stage is an equality check on normalized titles, not a
// similarity distance. Near-duplicates with genuinely different titles are
// allowed to slip through; distinct artifacts with short technical names
// must never be collapsed.
package dedup

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"radar/internal/catalog"
)

var (
	versionRe   = regexp.MustCompile(`(?i)\bv?\d+[.\d]*\b`)
	platformRe  = regexp.MustCompile(`(?i)\b(comfyui|huggingface|civitai|github|sdxl|flux|wan|sd ?1\.?5)\b`)
	separatorRe = regexp.MustCompile(`[_\-()\[\]:]`)
	spacesRe    = regexp.MustCompile(`\s+`)
)

// asciiSpacer maps every non-ASCII rune (emoji, decorative unicode) to a
// space so adjacent words stay separated.
var asciiSpacer = runes.Map(func(r rune) rune {
	if r > unicode.MaxASCII {
		return ' '
	}
	return r
})

// NormalizeTitle reduces a title to its cross-source comparison form:
// lowercase, ASCII only, version numbers and platform names stripped,
// separator punctuation and repeated whitespace collapsed.
func NormalizeTitle(title string) string {
	t := strings.ToLower(title)
	if mapped, _, err := transform.String(asciiSpacer, t); err == nil {
		t = mapped
	}
	t = versionRe.ReplaceAllString(t, " ")
	t = platformRe.ReplaceAllString(t, " ")
	t = separatorRe.ReplaceAllString(t, " ")
	t = spacesRe.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// Exact drops candidates whose canonical URL already appeared earlier in the
// list. First occurrence wins; input order is connector run order, so
// earlier-queried sources take priority.
func Exact(in []catalog.Candidate) (kept []catalog.Candidate, dropped []catalog.Candidate) {
	seen := make(map[string]struct{}, len(in))
	kept = make([]catalog.Candidate, 0, len(in))
	for _, c := range in {
		if _, ok := seen[c.URL]; ok {
			dropped = append(dropped, c)
			continue
		}
		seen[c.URL] = struct{}{}
		kept = append(kept, c)
	}
	return kept, dropped
}

// Fuzzy drops candidates whose normalized title already appeared earlier in
// the list. First occurrence wins, same ordering rule as Exact.
func Fuzzy(in []catalog.Candidate) (kept []catalog.Candidate, dropped []catalog.Candidate) {
	seen := make(map[string]struct{}, len(in))
	kept = make([]catalog.Candidate, 0, len(in))
	for _, c := range in {
		norm := NormalizeTitle(c.Title)
		if _, ok := seen[norm]; ok {
			dropped = append(dropped, c)
			continue
		}
		seen[norm] = struct{}{}
		kept = append(kept, c)
	}
	return kept, dropped
}

// Package digest reads and writes the plain-text digest exchanged between
// the monitor, the enrichment step, and the importer. Each entry is a
// numbered marker line followed by labeled fields:
//
//	# 1) Title
//	URL: https://...
//	Summary: ...
//	Use case: ...
//	Requirements: ...
//	Changes: ...
//	Score: 82
//
// Field values may span multiple lines; a value runs until the next known
// label or the end of the block. Unknown labels are treated as continuation
// text of the preceding field.
package digest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Entry is a digest entry as written by the monitor.
type Entry struct {
	Title        string
	URL          string
	Summary      string
	Usage        string
	Requirements string
	ChangeNotes  string
	Score        int
	HasScore     bool
}

// Record is a parsed digest entry. It carries the enrichment fields that a
// freshly generated digest does not yet have.
type Record struct {
	Title        string
	URL          string
	Image        string
	Summary      string
	Usage        string
	Requirements string
	ChangeNotes  string
	Category     string
	Ecosystem    string
	Signal       bool
	Score        int
	HasScore     bool
	Raw          string
}

var markerRe = regexp.MustCompile(`(?m)^\s*#\s*(\d+)\)\s*`)

// Field labels in canonical serialization order. Parsing accepts them in
// any order.
const (
	labelURL          = "URL"
	labelImage        = "Image"
	labelSummary      = "Summary"
	labelUsage        = "Use case"
	labelRequirements = "Requirements"
	labelChanges      = "Changes"
	labelCategory     = "Category"
	labelEcosystem    = "Ecosystem"
	labelSignal       = "Signal"
	labelScore        = "Score"
)

var knownLabels = []string{
	labelURL, labelImage, labelSummary, labelUsage, labelRequirements,
	labelChanges, labelCategory, labelEcosystem, labelSignal, labelScore,
}

// Format renders entries as digest text, numbered from 1.
func Format(entries []Entry) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "# %d) %s\n", i+1, e.Title)
		fmt.Fprintf(&b, "%s: %s\n", labelURL, e.URL)
		fmt.Fprintf(&b, "%s: %s\n", labelSummary, e.Summary)
		fmt.Fprintf(&b, "%s: %s\n", labelUsage, e.Usage)
		fmt.Fprintf(&b, "%s: %s\n", labelRequirements, e.Requirements)
		fmt.Fprintf(&b, "%s: %s\n", labelChanges, e.ChangeNotes)
		if e.HasScore {
			fmt.Fprintf(&b, "%s: %d\n", labelScore, e.Score)
		}
	}
	return strings.TrimSpace(b.String())
}

// Blocks splits digest text into raw per-entry blocks, marker stripped.
// Blank blocks are dropped.
func Blocks(text string) []string {
	parts := markerRe.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Title returns the first line of a raw block, which is the entry title.
func Title(block string) string {
	line, _, _ := strings.Cut(block, "\n")
	return strings.TrimSpace(line)
}

// Parse extracts all records from digest text. Blocks without a title line
// are skipped. Missing fields parse as empty values.
func Parse(text string) []Record {
	blocks := Blocks(text)
	records := make([]Record, 0, len(blocks))
	for _, b := range blocks {
		title := Title(b)
		if title == "" {
			continue
		}
		_, body, _ := strings.Cut(b, "\n")
		body = strings.TrimSpace(body)
		fields := splitFields(body)

		r := Record{
			Title:        title,
			URL:          fields[labelURL],
			Image:        fields[labelImage],
			Summary:      fields[labelSummary],
			Usage:        fields[labelUsage],
			Requirements: fields[labelRequirements],
			ChangeNotes:  fields[labelChanges],
			Category:     fields[labelCategory],
			Ecosystem:    fields[labelEcosystem],
			Signal:       strings.EqualFold(fields[labelSignal], "true"),
			Raw:          body,
		}
		if s, err := strconv.Atoi(strings.TrimSpace(fields[labelScore])); err == nil {
			r.Score = s
			r.HasScore = true
		}
		records = append(records, r)
	}
	return records
}

// Field extracts a single labeled value from a raw block body.
func Field(label, body string) string {
	return splitFields(body)[label]
}

// splitFields walks the body line by line. A line opens a field when it
// starts with a known label followed by a colon; every other line extends
// the currently open field.
func splitFields(body string) map[string]string {
	values := make(map[string]string, len(knownLabels))
	var current string
	var buf []string

	flush := func() {
		if current == "" {
			return
		}
		values[current] = strings.TrimSpace(strings.Join(buf, "\n"))
		buf = buf[:0]
	}

	for _, line := range strings.Split(body, "\n") {
		if label, rest, ok := matchLabel(line); ok {
			flush()
			current = label
			buf = append(buf, rest)
			continue
		}
		if current != "" {
			buf = append(buf, line)
		}
	}
	flush()

	for _, l := range knownLabels {
		if _, ok := values[l]; !ok {
			values[l] = ""
		}
	}
	return values
}

// matchLabel reports whether the line opens a known field. Label matching
// is case-insensitive and tolerates leading whitespace and space before the
// colon.
func matchLabel(line string) (label, rest string, ok bool) {
	trimmed := strings.TrimLeft(line, " \t")
	for _, l := range knownLabels {
		if len(trimmed) < len(l) || !strings.EqualFold(trimmed[:len(l)], l) {
			continue
		}
		after := strings.TrimLeft(trimmed[len(l):], " \t")
		if !strings.HasPrefix(after, ":") {
			continue
		}
		return l, strings.TrimSpace(after[1:]), true
	}
	return "", "", false
}

// Renumber rewrites the marker lines of raw blocks into a contiguous
// sequence starting at offset+1 and joins them back into digest text.
func Renumber(blocks []string, offset int) string {
	var b strings.Builder
	n := 0
	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if n > 0 {
			b.WriteString("\n\n")
		}
		n++
		fmt.Fprintf(&b, "# %d) %s", offset+n, block)
	}
	return b.String()
}

// Count returns the number of entries already present in digest text.
func Count(text string) int {
	return len(Blocks(text))
}

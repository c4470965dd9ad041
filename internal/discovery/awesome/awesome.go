// Package awesome discovers custom nodes from the curated awesome-comfyui
// README. The list is refreshed daily upstream, so there is no date window;
// the seen set alone prevents re-emission.
package awesome

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"radar/internal/catalog"
	"radar/internal/discovery"
	"radar/internal/state"
	"radar/internal/textutil"
)

const readmeURL = "https://raw.githubusercontent.com/ComfyUI-Workflow/awesome-comfyui/main/README.md"

// entryRe matches one markdown list entry:
//
//	* [**Name**](https://github.com/...) (⭐+123): description
//
// The star delta and the description are both optional.
var entryRe = regexp.MustCompile(
	`^\*\s+\[[*_]*([^\]]+?)[*_]*\]\((https://github\.com/[^)]+)\)` +
		`(?:\s+\(⭐\+(\d+)\))?` +
		`(?::\s+(.+))?$`)

// section maps a README heading to the traction base of its entries.
// Trending entries start with a bonus because the list already proved they
// are gaining stars.
type section struct {
	Heading      string
	Label        string
	TractionBase int
}

var sections = []section{
	{"New Workflows", "New Workflows", 0},
	{"Trending Workflows", "Trending", 50},
}

// Connector parses the curated README.
type Connector struct {
	client *http.Client
	url    string
}

// Option configures a Connector.
type Option func(*Connector)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Connector) {
		if client != nil {
			c.client = client
		}
	}
}

// WithURL points the connector at a different README location.
func WithURL(url string) Option {
	return func(c *Connector) {
		if url != "" {
			c.url = url
		}
	}
}

// New creates the connector.
func New(opts ...Option) *Connector {
	c := &Connector{
		client: discovery.DefaultHTTPClient(),
		url:    readmeURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements discovery.Connector.
func (c *Connector) Name() string { return "awesome-comfyui" }

// Fetch implements discovery.Connector.
func (c *Connector) Fetch(ctx context.Context, win discovery.Window, seen *state.SeenSet) ([]catalog.Candidate, error) {
	text, err := discovery.GetText(ctx, c.client, c.url, nil)
	if err != nil {
		return nil, err
	}

	bySection := splitSections(text)
	var out []catalog.Candidate
	for _, sec := range sections {
		for _, line := range bySection[sec.Heading] {
			m := entryRe.FindStringSubmatch(strings.TrimSpace(line))
			if m == nil {
				continue
			}
			name := cleanName(m[1])
			url := strings.TrimSpace(m[2])
			starsDelta := 0
			if m[3] != "" {
				starsDelta, _ = strconv.Atoi(m[3])
			}
			description := strings.TrimSpace(m[4])

			if name == "" || seen.Contains(url) {
				continue
			}

			summary := textutil.Truncate(description, 400)
			if summary == "" {
				summary = fmt.Sprintf("Custom node for ComfyUI: %s.", name)
			}
			usage := textutil.Truncate(description, 400)
			if usage == "" {
				usage = "Extends ComfyUI. See the repository for details."
			}
			changes := fmt.Sprintf("Listed under %q on awesome-comfyui.", sec.Label)
			if starsDelta > 0 {
				changes += fmt.Sprintf(" Recent star delta: +%d.", starsDelta)
			}

			cand := catalog.Candidate{
				Title:        name,
				URL:          url,
				Summary:      summary,
				Usage:        usage,
				Requirements: "Install via ComfyUI Manager.",
				ChangeNotes:  changes,
				Source:       catalog.SourceAwesomeList,
				Ecosystem:    catalog.EcosystemComfyUI,
				Traction:     sec.TractionBase + starsDelta,
				FetchedAt:    time.Now().UTC(),
			}
			if err := seen.Add(ctx, url); err != nil {
				return out, err
			}
			out = append(out, cand)
		}
	}
	return out, nil
}

// splitSections buckets README lines under their `## ` heading.
func splitSections(text string) map[string][]string {
	out := make(map[string][]string)
	current := ""
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "## ") {
			current = strings.TrimSpace(line[3:])
			continue
		}
		if current != "" {
			out[current] = append(out[current], line)
		}
	}
	return out
}

// cleanName strips emoji and other decoration from an entry name.
func cleanName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r > 0xFFFF || (r >= 0x2600 && r <= 0x27BF) {
			return ' '
		}
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, name)
	return textutil.CollapseSpaces(cleaned)
}

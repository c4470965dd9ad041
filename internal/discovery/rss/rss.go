// Package rss discovers announcements on the blogs of the main model
// vendors. Items without a parseable date pass the window filter; the
// relevance filter catches the off-topic ones.
package rss

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"radar/internal/catalog"
	"radar/internal/discovery"
	"radar/internal/state"
	"radar/internal/textutil"
)

// Feed names one vendor blog.
type Feed struct {
	Name string
	URL  string
}

// VendorFeeds is the default feed list.
func VendorFeeds() []Feed {
	return []Feed{
		{"Black Forest Labs", "https://blackforestlabs.ai/feed/"},
		{"Stability AI", "https://stability.ai/feed"},
		{"HuggingFace Blog", "https://huggingface.co/blog/feed.xml"},
		{"Qwen Blog", "https://qwenlm.github.io/feed.xml"},
		{"ComfyUI Blog", "https://blog.comfy.org/feed"},
	}
}

// Connector pulls and filters the vendor feeds.
type Connector struct {
	feeds  []Feed
	parser *gofeed.Parser
}

// New creates the connector. A nil feed list uses VendorFeeds.
func New(feeds []Feed, client *http.Client) *Connector {
	if feeds == nil {
		feeds = VendorFeeds()
	}
	parser := gofeed.NewParser()
	if client != nil {
		parser.Client = client
	}
	return &Connector{feeds: feeds, parser: parser}
}

// Name implements discovery.Connector.
func (c *Connector) Name() string { return "blog-rss" }

// Fetch implements discovery.Connector. A feed that fails to download or
// parse is skipped.
func (c *Connector) Fetch(ctx context.Context, win discovery.Window, seen *state.SeenSet) ([]catalog.Candidate, error) {
	var out []catalog.Candidate
	for _, feed := range c.feeds {
		parsed, err := c.parser.ParseURLWithContext(feed.URL, ctx)
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			continue
		}

		for _, item := range parsed.Items {
			link := item.Link
			if link == "" || seen.Contains(link) {
				continue
			}
			if when := itemTime(item); when != nil && when.Before(win.Cutoff) {
				continue
			}
			if !catalog.IsRelevant(item.Title + " " + item.Description) {
				continue
			}

			desc := textutil.Truncate(textutil.CollapseSpaces(textutil.StripHTML(item.Description)), 250)
			usage := desc
			if usage == "" {
				usage = fmt.Sprintf("Announcement published on %s.", feed.Name)
			}
			cand := catalog.Candidate{
				Title:        item.Title,
				URL:          link,
				Summary:      fmt.Sprintf("Blog article: %s.", feed.Name),
				Usage:        usage,
				Requirements: "N/A, informational article.",
				ChangeNotes:  fmt.Sprintf("Published on %s.", feed.Name),
				Source:       catalog.SourceBlog,
				Ecosystem:    catalog.GuessEcosystem(item.Title, item.Description, link),
				FetchedAt:    time.Now().UTC(),
			}
			if err := seen.Add(ctx, link); err != nil {
				return out, err
			}
			out = append(out, cand)
		}
	}
	return out, nil
}

func itemTime(item *gofeed.Item) *time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed
	}
	return item.UpdatedParsed
}

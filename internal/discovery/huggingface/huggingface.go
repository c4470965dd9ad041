// Package huggingface discovers recently modified models on the
// HuggingFace hub across a fixed set of tag searches. Traction floors are
// strict: a model passes with enough likes or enough downloads.
package huggingface

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"radar/internal/catalog"
	"radar/internal/discovery"
	"radar/internal/state"
)

const apiURL = "https://huggingface.co/api/models"

// tagSearch pairs a hub tag with its like and download floors.
type tagSearch struct {
	Tag          string
	MinLikes     int
	MinDownloads int
}

var tagSearches = []tagSearch{
	{"controlnet", 3, 100},
	{"wan-2.1", 3, 50},
	{"wan-2.2", 3, 50},
	{"flux", 5, 200},
	{"stable-diffusion-xl", 5, 200},
	{"image-to-video", 5, 100},
	{"text-to-video", 5, 100},
	{"animatediff", 3, 50},
	{"comfyui", 3, 50},
}

type hubModel struct {
	ModelID      string   `json:"modelId"`
	ID           string   `json:"id"`
	LastModified string   `json:"lastModified"`
	Downloads    int      `json:"downloads"`
	Likes        int      `json:"likes"`
	Tags         []string `json:"tags"`
	PipelineTag  string   `json:"pipeline_tag"`
}

// Connector queries the hub model API.
type Connector struct {
	client  *http.Client
	baseURL string

	minLikes     int
	minDownloads int
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

// WithBaseURL points the connector at a different API endpoint.
func WithBaseURL(base string) Option {
	return func(c *Connector) {
		if base != "" {
			c.baseURL = base
		}
	}
}

// New creates the connector. Configured floors raise the per-tag defaults,
// they never lower them.
func New(minLikes, minDownloads int, opts ...Option) *Connector {
	c := &Connector{
		client:       discovery.DefaultHTTPClient(),
		baseURL:      apiURL,
		minLikes:     minLikes,
		minDownloads: minDownloads,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements discovery.Connector.
func (c *Connector) Name() string { return "huggingface" }

// Fetch implements discovery.Connector.
func (c *Connector) Fetch(ctx context.Context, win discovery.Window, seen *state.SeenSet) ([]catalog.Candidate, error) {
	var out []catalog.Candidate
	for _, search := range tagSearches {
		params := url.Values{}
		params.Set("filter", search.Tag)
		params.Set("sort", "lastModified")
		params.Set("direction", "-1")
		params.Set("limit", "20")
		params.Set("full", "true")

		var models []hubModel
		if err := discovery.GetJSON(ctx, c.client, c.baseURL, params, nil, &models); err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			if err := discovery.Pace(ctx, win); err != nil {
				return out, err
			}
			continue
		}

		minLikes := max(search.MinLikes, c.minLikes)
		minDownloads := max(search.MinDownloads, c.minDownloads)

		for _, model := range models {
			modelID := model.ModelID
			if modelID == "" {
				modelID = model.ID
			}
			if modelID == "" {
				continue
			}
			modelURL := "https://huggingface.co/" + modelID
			if seen.Contains(modelURL) {
				continue
			}

			modified, err := time.Parse(time.RFC3339, model.LastModified)
			if err != nil || modified.Before(win.Cutoff) {
				continue
			}
			if catalog.IsTrivialName(modelID) {
				continue
			}
			if model.Likes < minLikes && model.Downloads < minDownloads {
				continue
			}

			tags := strings.Join(model.Tags, " ")
			if !catalog.IsRelevant(modelID + " " + tags) {
				continue
			}

			changes := "New model."
			if len(model.Tags) > 0 {
				shown := model.Tags
				if len(shown) > 8 {
					shown = shown[:8]
				}
				changes = "Tags: " + strings.Join(shown, ", ")
			}
			shortName := modelID
			if i := strings.LastIndex(modelID, "/"); i >= 0 {
				shortName = modelID[i+1:]
			}

			cand := catalog.Candidate{
				Title:        shortName,
				URL:          modelURL,
				Summary:      fmt.Sprintf("Model on HuggingFace: %s. Pipeline: %s.", modelID, model.PipelineTag),
				Usage:        fmt.Sprintf("Model for diffusion or video pipelines. %d downloads, %d likes.", model.Downloads, model.Likes),
				Requirements: "Download from HuggingFace. See the model card.",
				ChangeNotes:  changes,
				Source:       catalog.SourceHuggingFace,
				Ecosystem:    catalog.GuessEcosystem(modelID, tags, modelURL),
				Traction:     model.Downloads,
				FetchedAt:    time.Now().UTC(),
			}
			if err := seen.Add(ctx, modelURL); err != nil {
				return out, err
			}
			out = append(out, cand)
		}

		if err := discovery.Pace(ctx, win); err != nil {
			return out, err
		}
	}
	return out, nil
}

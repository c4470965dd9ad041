// Package civitai discovers fresh LoRAs on Civitai. Only a small allow set
// of base models is of interest, and models need real traction (downloads
// or rating) to pass.
package civitai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"radar/internal/catalog"
	"radar/internal/discovery"
	"radar/internal/state"
	"radar/internal/textutil"
)

const apiURL = "https://civitai.com/api/v1/models"

// baseModels are the only ecosystems worth surfacing.
var baseModels = map[string]struct{}{
	"Flux.1 S":    {},
	"Flux.1 D":    {},
	"SDXL 1.0":    {},
	"Wan Video":   {},
	"Illustrious": {},
}

type apiResponse struct {
	Items []apiModel `json:"items"`
}

type apiModel struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Tags        []struct {
		Name string `json:"name"`
	} `json:"tags"`
	Stats struct {
		DownloadCount int     `json:"downloadCount"`
		Rating        float64 `json:"rating"`
	} `json:"stats"`
	ModelVersions []struct {
		CreatedAt string `json:"createdAt"`
		BaseModel string `json:"baseModel"`
	} `json:"modelVersions"`
}

// Connector queries the Civitai model API.
type Connector struct {
	client  *http.Client
	baseURL string

	minDownloads int
	minRating    float64
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

// New creates the connector with the configured traction floors.
func New(minDownloads int, minRating float64, opts ...Option) *Connector {
	c := &Connector{
		client:       discovery.DefaultHTTPClient(),
		baseURL:      apiURL,
		minDownloads: minDownloads,
		minRating:    minRating,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements discovery.Connector.
func (c *Connector) Name() string { return "civitai" }

// Fetch implements discovery.Connector. One API page covers the whole
// window because the query is already restricted to the newest LoRAs of
// the week.
func (c *Connector) Fetch(ctx context.Context, win discovery.Window, seen *state.SeenSet) ([]catalog.Candidate, error) {
	params := url.Values{}
	params.Set("types", "LORA")
	params.Set("sort", "Newest")
	params.Set("period", "Week")
	params.Set("limit", "50")
	params.Set("nsfw", "false")

	var resp apiResponse
	if err := discovery.GetJSON(ctx, c.client, c.baseURL, params, nil, &resp); err != nil {
		return nil, err
	}

	var out []catalog.Candidate
	for _, model := range resp.Items {
		modelURL := "https://civitai.com/models/" + strconv.Itoa(model.ID)
		if seen.Contains(modelURL) {
			continue
		}
		if len(model.ModelVersions) == 0 {
			continue
		}
		latest := model.ModelVersions[0]
		created, err := time.Parse(time.RFC3339, latest.CreatedAt)
		if err != nil || created.Before(win.Cutoff) {
			continue
		}
		if _, ok := baseModels[latest.BaseModel]; !ok {
			continue
		}
		if model.Stats.DownloadCount < c.minDownloads && model.Stats.Rating < c.minRating {
			continue
		}
		if catalog.IsTrivialName(model.Name) {
			continue
		}

		description := textutil.Truncate(textutil.CollapseSpaces(textutil.StripHTML(model.Description)), 250)
		tags := make([]string, 0, len(model.Tags))
		for _, t := range model.Tags {
			if t.Name != "" {
				tags = append(tags, t.Name)
			}
		}
		if len(tags) > 6 {
			tags = tags[:6]
		}
		tagsStr := strings.Join(tags, ", ")

		usage := description
		if usage == "" {
			usage = fmt.Sprintf("LoRA for %s. %d downloads, %.1f/5 rating.",
				latest.BaseModel, model.Stats.DownloadCount, model.Stats.Rating)
		}
		changes := fmt.Sprintf("New LoRA. %d downloads.", model.Stats.DownloadCount)
		if tagsStr != "" {
			changes = "Tags: " + tagsStr
		}

		cand := catalog.Candidate{
			Title:        model.Name,
			URL:          modelURL,
			Summary:      fmt.Sprintf("LoRA on Civitai. Base model: %s.", latest.BaseModel),
			Usage:        usage,
			Requirements: fmt.Sprintf("Download from Civitai. Compatible with %s.", latest.BaseModel),
			ChangeNotes:  changes,
			Source:       catalog.SourceCivitai,
			Ecosystem:    catalog.GuessEcosystem(model.Name, latest.BaseModel+" "+tagsStr, modelURL),
			Traction:     model.Stats.DownloadCount,
			FetchedAt:    time.Now().UTC(),
		}
		if err := seen.Add(ctx, modelURL); err != nil {
			return out, err
		}
		out = append(out, cand)
	}
	return out, nil
}

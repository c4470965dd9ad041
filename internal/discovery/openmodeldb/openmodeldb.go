// Package openmodeldb discovers new upscaling models by watching the
// commits of the OpenModelDB database repository. Model files added or
// modified in recent commits map directly to catalog pages.
package openmodeldb

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	gh "github.com/google/go-github/v57/github"

	"radar/internal/catalog"
	"radar/internal/discovery"
	"radar/internal/state"
	"radar/internal/textutil"
)

const (
	repoOwner = "OpenModelDB"
	repoName  = "open-model-database"

	rawBaseURL = "https://raw.githubusercontent.com/OpenModelDB/open-model-database/main/"

	// maxCommits caps how many commit detail requests one run may issue.
	maxCommits = 5
)

type modelFile struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Tags         []string `json:"tags"`
	Scale        int      `json:"scale"`
	Architecture string   `json:"architecture"`
}

// Connector watches the database repository.
type Connector struct {
	github  *gh.Client
	client  *http.Client
	rawBase string
}

// Option configures a Connector.
type Option func(*Connector)

// WithHTTPClient overrides the client used for raw model file fetches.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Connector) {
		if client != nil {
			c.client = client
		}
	}
}

// WithRawBaseURL points raw file fetches at a different host.
func WithRawBaseURL(base string) Option {
	return func(c *Connector) {
		if base != "" {
			c.rawBase = base
		}
	}
}

// New creates the connector.
func New(github *gh.Client, opts ...Option) *Connector {
	c := &Connector{
		github:  github,
		client:  discovery.DefaultHTTPClient(),
		rawBase: rawBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements discovery.Connector.
func (c *Connector) Name() string { return "openmodeldb" }

// Fetch implements discovery.Connector.
func (c *Connector) Fetch(ctx context.Context, win discovery.Window, seen *state.SeenSet) ([]catalog.Candidate, error) {
	commits, _, err := c.github.Repositories.ListCommits(ctx, repoOwner, repoName,
		&gh.CommitsListOptions{ListOptions: gh.ListOptions{PerPage: 20}})
	if err != nil {
		return nil, fmt.Errorf("list commits: %w", err)
	}

	var recent []*gh.RepositoryCommit
	for _, commit := range commits {
		if commit.GetCommit().GetCommitter().GetDate().Before(win.Cutoff) {
			continue
		}
		recent = append(recent, commit)
	}
	if len(recent) > maxCommits {
		recent = recent[:maxCommits]
	}

	var out []catalog.Candidate
	for _, commit := range recent {
		detail, _, err := c.github.Repositories.GetCommit(ctx, repoOwner, repoName, commit.GetSHA(), nil)
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			continue
		}

		for _, file := range detail.Files {
			filename := file.GetFilename()
			if !strings.HasPrefix(filename, "data/models/") || !strings.HasSuffix(filename, ".json") {
				continue
			}
			if status := file.GetStatus(); status != "added" && status != "modified" {
				continue
			}

			modelID := strings.TrimSuffix(strings.TrimPrefix(filename, "data/models/"), ".json")
			modelURL := "https://openmodeldb.info/models/" + modelID
			if seen.Contains(modelURL) {
				continue
			}

			cand := c.buildCandidate(ctx, modelID, filename, modelURL)
			if err := seen.Add(ctx, modelURL); err != nil {
				return out, err
			}
			out = append(out, cand)

			if err := discovery.Pace(ctx, win); err != nil {
				return out, err
			}
		}
	}
	return out, nil
}

// buildCandidate enriches the candidate from the model's raw JSON when
// available and falls back to the bare model id otherwise.
func (c *Connector) buildCandidate(ctx context.Context, modelID, filename, modelURL string) catalog.Candidate {
	name := modelID
	description := ""
	tagsStr := ""
	scaleStr := ""
	arch := ""

	var model modelFile
	if err := discovery.GetJSON(ctx, c.client, c.rawBase+filename, nil, nil, &model); err == nil {
		if model.Name != "" {
			name = model.Name
		}
		description = textutil.Truncate(strings.TrimSpace(model.Description), 250)
		if len(model.Tags) > 0 {
			shown := model.Tags
			if len(shown) > 6 {
				shown = shown[:6]
			}
			tagsStr = strings.Join(shown, ", ")
		}
		if model.Scale > 0 {
			scaleStr = fmt.Sprintf("%dx", model.Scale)
		}
		arch = model.Architecture
	}

	title := strings.TrimSpace(name)
	if detail := strings.TrimSpace(scaleStr + " " + arch); detail != "" {
		title = fmt.Sprintf("%s (%s)", name, detail)
	}

	usage := description
	if usage == "" {
		usage = "Upscaling and restoration model. Tags: " + tagsStr
	}
	changes := "New model on OpenModelDB."
	if tagsStr != "" {
		changes = "Recently added. Tags: " + tagsStr
	}
	orNA := func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	}

	return catalog.Candidate{
		Title:        title,
		URL:          modelURL,
		Summary:      fmt.Sprintf("Upscaling model on OpenModelDB. Architecture: %s. Scale: %s.", orNA(arch), orNA(scaleStr)),
		Usage:        usage,
		Requirements: "Download from OpenModelDB. Compatible with chaiNNer and ComfyUI upscalers.",
		ChangeNotes:  changes,
		Source:       catalog.SourceOpenModelDB,
		Ecosystem:    catalog.EcosystemComfyUI,
		FetchedAt:    time.Now().UTC(),
	}
}

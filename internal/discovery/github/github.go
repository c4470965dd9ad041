// Package github discovers candidates on GitHub: new repositories matching
// a fixed set of search queries, and fresh releases (or failing that,
// recent commits) of a curated watch list of key repositories.
package github

import (
	"context"
	"fmt"
	"strings"
	"time"

	gh "github.com/google/go-github/v57/github"

	"radar/internal/catalog"
	"radar/internal/discovery"
	"radar/internal/state"
	"radar/internal/textutil"
)

// searchQuery pairs a repository search with the star floor a hit must
// clear.
type searchQuery struct {
	Query    string
	MinStars int
}

var repoQueries = []searchQuery{
	{"comfyui custom node", 15},
	{"comfyui workflow", 15},
	{"controlnet comfyui", 10},
	{"flux comfyui loader", 10},
	{"wan video comfyui", 10},
	{"comfyui video generation", 10},
	{"stable diffusion pipeline python", 10},
	{"animatediff comfyui", 10},
	{"comfyui upscaler node", 5},
	{"image generation comfyui tool", 10},
}

// keyRepos is the watch list of repositories whose releases matter even
// when they would not surface in a search.
var keyRepos = []string{
	// ComfyUI core
	"comfyanonymous/ComfyUI",
	"ltdrdata/ComfyUI-Manager",
	// Video model wrappers
	"kijai/ComfyUI-WanVideoWrapper",
	"kijai/ComfyUI-HunyuanVideoWrapper",
	"kijai/ComfyUI-CogVideoXWrapper",
	"kijai/ComfyUI-LTXVideo",
	"kijai/ComfyUI-MochiWrapper",
	"Kosinkadink/ComfyUI-AnimateDiff-Evolved",
	// Control / IP-Adapter
	"cubiq/ComfyUI_IPAdapter_plus",
	"Fannovel16/comfyui_controlnet_aux",
	// Quantization / GGUF
	"city96/ComfyUI-GGUF",
	// Tooling / nodes
	"chrisgoringe/cg-use-everywhere",
	"rgthree/rgthree-comfy",
	"pythongosssss/ComfyUI-Custom-Scripts",
	// Training
	"kohya-ss/sd-scripts",
	"ostris/ai-toolkit",
	// Alternative frontends
	"lllyasviel/stable-diffusion-webui-forge",
	"mcmonkeyprojects/SwarmUI",
	"AUTOMATIC1111/stable-diffusion-webui",
	// Base models / ecosystems
	"black-forest-labs/flux",
	"huggingface/diffusers",
	"Wan-AI/Wan2.1",
	"QwenLM/Qwen2.5",
	// Model index tracked via repo commits
	"OpenModelDB/open-model-database",
}

// NewAPIClient builds a GitHub API client, authenticated when a token is
// configured.
func NewAPIClient(token string) *gh.Client {
	client := gh.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return client
}

// RepoSearch finds newly created repositories matching the query list.
type RepoSearch struct {
	client   *gh.Client
	minStars int
}

// NewRepoSearch creates the repository search connector. minStars raises
// the per-query star floors, it never lowers them.
func NewRepoSearch(client *gh.Client, minStars int) *RepoSearch {
	return &RepoSearch{client: client, minStars: minStars}
}

// Name implements discovery.Connector.
func (s *RepoSearch) Name() string { return "github-repos" }

// Fetch implements discovery.Connector. Individual query failures skip to
// the next query; only a canceled context aborts the whole fetch.
func (s *RepoSearch) Fetch(ctx context.Context, win discovery.Window, seen *state.SeenSet) ([]catalog.Candidate, error) {
	var out []catalog.Candidate
	cutoff := win.Cutoff.Format("2006-01-02")

	for _, q := range repoQueries {
		result, _, err := s.client.Search.Repositories(ctx,
			fmt.Sprintf("%s created:>%s", q.Query, cutoff),
			&gh.SearchOptions{
				Sort:        "stars",
				Order:       "desc",
				ListOptions: gh.ListOptions{PerPage: 8},
			})
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			if err := discovery.Pace(ctx, win); err != nil {
				return out, err
			}
			continue
		}

		for _, repo := range result.Repositories {
			url := repo.GetHTMLURL()
			if url == "" || seen.Contains(url) {
				continue
			}
			stars := repo.GetStargazersCount()
			if stars < max(q.MinStars, s.minStars) {
				continue
			}
			fullName := repo.GetFullName()
			description := repo.GetDescription()
			if catalog.IsTrivialName(fullName) {
				continue
			}
			if !catalog.IsRelevant(fullName + " " + description) {
				continue
			}

			summary := description
			if summary == "" {
				summary = "GitHub repository: " + fullName
			}
			changes := "New repository."
			if topics := strings.Join(repo.Topics, ", "); topics != "" {
				changes = "New repository. Topics: " + topics
			}
			c := catalog.Candidate{
				Title:        repo.GetName(),
				URL:          url,
				Summary:      summary,
				Usage:        fmt.Sprintf("Tooling or integration for the ComfyUI/GenAI ecosystem. %d stars.", stars),
				Requirements: "See the repository README.",
				ChangeNotes:  changes,
				Source:       catalog.SourceGitHub,
				Traction:     stars,
				FetchedAt:    time.Now().UTC(),
			}
			if err := seen.Add(ctx, url); err != nil {
				return out, err
			}
			out = append(out, c)
		}

		if err := discovery.Pace(ctx, win); err != nil {
			return out, err
		}
	}
	return out, nil
}

// KeyRepoReleases follows the watch list: new releases inside the window,
// falling back to the latest commit when a repository does not publish
// releases.
type KeyRepoReleases struct {
	client *gh.Client
}

// NewKeyRepoReleases creates the watch list connector.
func NewKeyRepoReleases(client *gh.Client) *KeyRepoReleases {
	return &KeyRepoReleases{client: client}
}

// Name implements discovery.Connector.
func (k *KeyRepoReleases) Name() string { return "github-releases" }

// Fetch implements discovery.Connector.
func (k *KeyRepoReleases) Fetch(ctx context.Context, win discovery.Window, seen *state.SeenSet) ([]catalog.Candidate, error) {
	var out []catalog.Candidate
	for _, repo := range keyRepos {
		owner, name, ok := strings.Cut(repo, "/")
		if !ok {
			continue
		}

		releases, _, err := k.client.Repositories.ListReleases(ctx, owner, name,
			&gh.ListOptions{PerPage: 3})
		if err != nil && ctx.Err() != nil {
			return out, ctx.Err()
		}

		if len(releases) > 0 {
			for _, rel := range releases {
				url := rel.GetHTMLURL()
				if url == "" || seen.Contains(url) {
					continue
				}
				if rel.GetPublishedAt().Before(win.Cutoff) {
					continue
				}
				tag := rel.GetTagName()
				body := textutil.CollapseSpaces(textutil.Truncate(rel.GetBody(), 300))

				usage := body
				if usage == "" {
					usage = fmt.Sprintf("New version of %s.", name)
				}
				changes := body
				if changes == "" {
					changes = "See the release notes on GitHub."
				}
				c := catalog.Candidate{
					Title:        strings.TrimSpace(name + " " + tag),
					URL:          url,
					Summary:      fmt.Sprintf("Release %s of %s.", tag, repo),
					Usage:        usage,
					Requirements: "Update from the repository or ComfyUI Manager.",
					ChangeNotes:  changes,
					Source:       catalog.SourceGitHub,
					Ecosystem:    catalog.GuessEcosystem(repo, "", ""),
					FetchedAt:    time.Now().UTC(),
				}
				if err := seen.Add(ctx, url); err != nil {
					return out, err
				}
				out = append(out, c)
			}
		} else if c, ok, err := k.latestCommit(ctx, owner, name, win, seen); err != nil {
			return out, err
		} else if ok {
			out = append(out, c)
		}

		if err := discovery.Pace(ctx, win); err != nil {
			return out, err
		}
	}
	return out, nil
}

// latestCommit emits a single activity candidate for repositories without
// releases. The candidate URL is the repository itself so one entry covers
// all recent commits.
func (k *KeyRepoReleases) latestCommit(ctx context.Context, owner, name string, win discovery.Window, seen *state.SeenSet) (catalog.Candidate, bool, error) {
	commits, _, err := k.client.Repositories.ListCommits(ctx, owner, name,
		&gh.CommitsListOptions{ListOptions: gh.ListOptions{PerPage: 1}})
	if err != nil {
		if ctx.Err() != nil {
			return catalog.Candidate{}, false, ctx.Err()
		}
		return catalog.Candidate{}, false, nil
	}
	if len(commits) == 0 {
		return catalog.Candidate{}, false, nil
	}

	commit := commits[0]
	when := commit.GetCommit().GetCommitter().GetDate()
	if when.Before(win.Cutoff) {
		return catalog.Candidate{}, false, nil
	}

	repo := owner + "/" + name
	url := "https://github.com/" + repo
	if seen.Contains(url) {
		return catalog.Candidate{}, false, nil
	}

	msg := textutil.CollapseSpaces(textutil.Truncate(commit.GetCommit().GetMessage(), 150))
	usage := msg
	if usage == "" {
		usage = fmt.Sprintf("Recent changes in %s.", name)
	}
	changes := msg
	if changes == "" {
		changes = "See the recent commits."
	}
	c := catalog.Candidate{
		Title:        name + " (recent commits)",
		URL:          url,
		Summary:      fmt.Sprintf("Recent activity in %s.", repo),
		Usage:        usage,
		Requirements: "git pull or update from ComfyUI Manager.",
		ChangeNotes:  changes,
		Source:       catalog.SourceGitHub,
		Ecosystem:    catalog.GuessEcosystem(repo, "", ""),
		FetchedAt:    time.Now().UTC(),
	}
	if err := seen.Add(ctx, url); err != nil {
		return catalog.Candidate{}, false, err
	}
	return c, true, nil
}

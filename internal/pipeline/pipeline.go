// Package pipeline orchestrates a monitor run: fetch from all sources,
// deduplicate, score, and write the raw digest.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"radar/internal/catalog"
	"radar/internal/config"
	"radar/internal/dedup"
	"radar/internal/digest"
	"radar/internal/discovery"
	"radar/internal/discovery/awesome"
	"radar/internal/discovery/civitai"
	"radar/internal/discovery/github"
	"radar/internal/discovery/huggingface"
	"radar/internal/discovery/openmodeldb"
	"radar/internal/discovery/rss"
	"radar/internal/fileutil"
	"radar/internal/scoring"
	"radar/internal/state"
)

// Summary reports what a monitor run produced.
type Summary struct {
	RunID      string
	Sources    []discovery.SourceResult
	Fetched    int
	ExactDups  int
	FuzzyDups  int
	Written    int
	DigestPath string
}

// Connectors wires the full connector set from configuration.
func Connectors(cfg *config.Config) []discovery.Connector {
	api := github.NewAPIClient(cfg.Monitor.GitHubToken)
	return []discovery.Connector{
		github.NewRepoSearch(api, cfg.Monitor.MinRepoStars),
		github.NewKeyRepoReleases(api),
		huggingface.New(cfg.Monitor.MinHFLikes, cfg.Monitor.MinHFDownloads),
		rss.New(nil, nil),
		civitai.New(cfg.Monitor.MinCivitaiDownloads, cfg.Monitor.MinCivitaiRating),
		openmodeldb.New(api),
		awesome.New(),
	}
}

// Run executes one monitor pass and writes the raw digest. A run with no
// new candidates writes an empty digest and reports Written == 0.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger, store *state.Store, connectors []discovery.Connector) (*Summary, error) {
	runID := uuid.NewString()
	log := logger.With("run_id", runID)

	seen, err := store.LoadSeen(ctx)
	if err != nil {
		return nil, err
	}
	log.Info("starting monitor run",
		"lookback_days", cfg.Monitor.LookbackDays,
		"seen_urls", seen.Len())

	win := discovery.NewWindow(cfg.Monitor.LookbackDays, cfg.Monitor.RequestPacing())
	runner := discovery.NewRunner(log, cfg.Monitor.SourceWorkers)
	for _, c := range connectors {
		runner.Register(c)
	}

	candidates, results := runner.Run(ctx, win, seen)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	unique, exactDropped := dedup.Exact(candidates)
	unique, fuzzyDropped := dedup.Fuzzy(unique)
	for _, d := range fuzzyDropped {
		log.Info("cross-source duplicate skipped", "title", d.Title, "source", d.Source)
	}

	ranked := scoring.Rank(unique)
	entries := make([]digest.Entry, 0, len(ranked))
	for _, r := range ranked {
		entries = append(entries, digest.Entry{
			Title:        r.Title,
			URL:          r.URL,
			Summary:      r.Summary,
			Usage:        r.Usage,
			Requirements: r.Requirements,
			ChangeNotes:  r.ChangeNotes,
			Score:        r.Score,
			HasScore:     true,
		})
	}

	path := cfg.RawDigestPath()
	if err := fileutil.WriteFileAtomic(path, []byte(digest.Format(entries)), 0o644); err != nil {
		return nil, fmt.Errorf("write digest: %w", err)
	}

	if len(entries) == 0 {
		log.Info("no new candidates in window")
	} else {
		log.Info("digest written", "entries", len(entries), "path", path)
	}

	return &Summary{
		RunID:      runID,
		Sources:    results,
		Fetched:    len(candidates),
		ExactDups:  len(exactDropped),
		FuzzyDups:  len(fuzzyDropped),
		Written:    len(entries),
		DigestPath: path,
	}, nil
}

// TopCandidates returns the highest scored candidates for status displays.
func TopCandidates(in []catalog.Candidate, n int) []scoring.Scored {
	ranked := scoring.Rank(in)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

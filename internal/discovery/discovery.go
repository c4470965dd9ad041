// Package discovery runs the source connectors that collect fresh
// GenAI-artifact candidates. Each connector queries one upstream service,
// applies the shared relevance and freshness filters, and registers every
// emitted URL in the seen set so later runs skip it.
package discovery

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"radar/internal/catalog"
	"radar/internal/state"
)

// Window bounds a discovery run.
type Window struct {
	// Cutoff is the oldest publication time a candidate may have.
	Cutoff time.Time
	// Pacing is the pause between consecutive sub-queries of one
	// connector.
	Pacing time.Duration
}

// NewWindow builds the run window for a lookback of the given number of
// days.
func NewWindow(lookbackDays int, pacing time.Duration) Window {
	return Window{
		Cutoff: time.Now().UTC().AddDate(0, 0, -lookbackDays),
		Pacing: pacing,
	}
}

// Connector is one candidate source.
type Connector interface {
	Name() string
	Fetch(ctx context.Context, win Window, seen *state.SeenSet) ([]catalog.Candidate, error)
}

// SourceResult summarizes one connector's contribution to a run.
type SourceResult struct {
	Name  string
	Count int
	Err   error
}

// Runner executes connectors on a bounded worker pool.
type Runner struct {
	logger     *slog.Logger
	workers    int
	connectors []Connector
	registered map[string]struct{}
}

// NewRunner creates a runner with the given pool size. A size below one is
// treated as one.
func NewRunner(logger *slog.Logger, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		logger:     logger,
		workers:    workers,
		registered: make(map[string]struct{}),
	}
}

// Register adds a connector. Registering the same name twice is a no-op, so
// wiring code can be called repeatedly.
func (r *Runner) Register(c Connector) {
	if c == nil {
		return
	}
	if _, ok := r.registered[c.Name()]; ok {
		return
	}
	r.registered[c.Name()] = struct{}{}
	r.connectors = append(r.connectors, c)
}

// Run fetches from every registered connector. A failing connector is
// reported in its SourceResult and does not abort the run. Candidates are
// concatenated in registration order regardless of which worker finished
// first.
func (r *Runner) Run(ctx context.Context, win Window, seen *state.SeenSet) ([]catalog.Candidate, []SourceResult) {
	batches := make([][]catalog.Candidate, len(r.connectors))
	results := make([]SourceResult, len(r.connectors))

	sem := make(chan struct{}, r.workers)
	var wg sync.WaitGroup
	for i, c := range r.connectors {
		wg.Add(1)
		go func(i int, c Connector) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			log := r.logger.With("source", c.Name())
			log.Info("fetching")
			candidates, err := c.Fetch(ctx, win, seen)
			if err != nil {
				log.Warn("source failed", "error", err)
			} else {
				log.Info("fetched", "candidates", len(candidates))
			}
			batches[i] = candidates
			results[i] = SourceResult{Name: c.Name(), Count: len(candidates), Err: err}
		}(i, c)
	}
	wg.Wait()

	var all []catalog.Candidate
	for _, b := range batches {
		all = append(all, b...)
	}
	return all, results
}

// Pace sleeps for the window's pacing interval, returning early when the
// context is canceled.
func Pace(ctx context.Context, win Window) error {
	if win.Pacing <= 0 {
		return nil
	}
	timer := time.NewTimer(win.Pacing)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

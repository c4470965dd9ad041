// Package importer pushes the reviewed digest into the Notion tracking
// database. Every record is checked against the daily and the global
// suppression log first, so re-running an import never creates duplicate
// pages.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"radar/internal/catalog"
	"radar/internal/config"
	"radar/internal/digest"
	"radar/internal/fileutil"
	"radar/internal/notion"
	"radar/internal/state"
)

// ErrEmptyDigest indicates there was nothing to import. The digest file is
// left untouched so the caller can investigate.
var ErrEmptyDigest = errors.New("no entries in the import digest")

// PageCreator is the single Notion operation the importer needs.
type PageCreator interface {
	CreatePage(ctx context.Context, page notion.Page) (string, error)
}

// Outcome tallies one import batch.
type Outcome struct {
	Created      int
	Skipped      int
	Failed       int
	FailedTitles []string
	ArchivePath  string
}

// Run imports the reviewed digest. Failed records stay out of the
// suppression logs so the next run retries them; the digest itself is
// archived and truncated regardless of failures.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger, store *state.Store, creator PageCreator) (*Outcome, error) {
	digestPath := cfg.ImportDigestPath()
	data, err := os.ReadFile(digestPath)
	if err != nil {
		return nil, fmt.Errorf("read import digest: %w", err)
	}
	records := digest.Parse(string(data))
	if len(records) == 0 {
		return nil, ErrEmptyDigest
	}

	now := time.Now()
	daily, err := store.LoadLog(ctx, state.DailyKey(now))
	if err != nil {
		return nil, err
	}
	global, err := store.LoadLog(ctx, state.GlobalKey)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{}
	for _, record := range records {
		url := strings.TrimSpace(record.URL)
		title := strings.TrimSpace(record.Title)

		if daily.Has(url, title) || global.Has(url, title) {
			logger.Info("skipping duplicate", "title", title)
			outcome.Skipped++
			continue
		}

		if _, err := creator.CreatePage(ctx, buildPage(record)); err != nil {
			logger.Warn("page creation failed", "title", title, "error", err)
			outcome.Failed++
			outcome.FailedTitles = append(outcome.FailedTitles, title)
			continue
		}

		daily.Mark(url, title)
		global.Mark(url, title)
		outcome.Created++
		logger.Info("page created", "title", title)
	}

	if err := store.SaveLogs(ctx, daily, global); err != nil {
		return outcome, err
	}

	archived, err := archiveAndClear(cfg, digestPath, now)
	if err != nil {
		return outcome, err
	}
	outcome.ArchivePath = archived

	logger.Info("import finished",
		"created", outcome.Created,
		"skipped", outcome.Skipped,
		"failed", outcome.Failed)
	return outcome, nil
}

// buildPage maps a digest record onto a tracking page, falling back to the
// URL and text heuristics for fields the enrichment step left blank.
func buildPage(record digest.Record) notion.Page {
	category := catalog.Category(record.Category)
	if category == "" {
		category = catalog.GuessCategory(record.Title, record.Raw)
	}
	ecosystem := catalog.Ecosystem(record.Ecosystem)
	if ecosystem == "" {
		ecosystem = catalog.GuessEcosystem(record.Title, record.Raw, record.URL)
	}

	return notion.Page{
		Title:        record.Title,
		URL:          record.URL,
		Image:        record.Image,
		Summary:      record.Summary,
		UseCase:      record.Usage,
		Requirements: record.Requirements,
		Impact:       record.ChangeNotes,
		Category:     category,
		Source:       catalog.GuessSource(record.URL),
		Ecosystem:    ecosystem,
		Signal:       record.Signal,
	}
}

// archiveAndClear copies the digest into the archive directory and
// truncates the working file.
func archiveAndClear(cfg *config.Config, digestPath string, now time.Time) (string, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return "", fmt.Errorf("ensure directories: %w", err)
	}
	name := fmt.Sprintf("digest_%s.txt", now.Format("20060102_150405"))
	archived := filepath.Join(cfg.Paths.ArchiveDir, name)
	if err := fileutil.CopyFile(digestPath, archived); err != nil {
		return "", fmt.Errorf("archive digest: %w", err)
	}
	if err := fileutil.WriteFileAtomic(digestPath, nil, 0o644); err != nil {
		return "", fmt.Errorf("clear digest: %w", err)
	}
	return archived, nil
}

package state

import (
	"context"
	"fmt"
	"strings"
)

// ImportLog is one suppression log: the URLs and titles already pushed to
// the tracking database under a given key. The importer loads the daily and
// global logs before a batch, marks entries in memory as pages are created,
// and persists all marks in one transaction at the end.
type ImportLog struct {
	Key    string
	urls   map[string]struct{}
	titles map[string]struct{}
}

// LoadLog reads the suppression log stored under key. A key with no rows
// yields an empty log.
func (s *Store) LoadLog(ctx context.Context, key string) (*ImportLog, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT kind, value FROM import_log WHERE log_key = ?", key)
	if err != nil {
		return nil, fmt.Errorf("load import log %s: %w", key, err)
	}
	defer rows.Close()

	log := &ImportLog{
		Key:    key,
		urls:   make(map[string]struct{}),
		titles: make(map[string]struct{}),
	}
	for rows.Next() {
		var kind, value string
		if err := rows.Scan(&kind, &value); err != nil {
			return nil, fmt.Errorf("scan import log row: %w", err)
		}
		switch kind {
		case "url":
			log.urls[value] = struct{}{}
		case "title":
			log.titles[value] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate import log %s: %w", key, err)
	}
	return log, nil
}

// Has reports whether the log suppresses the record. A non-empty URL is
// matched on URL alone; a record without URL falls back to title matching.
func (l *ImportLog) Has(url, title string) bool {
	url = strings.TrimSpace(url)
	title = strings.TrimSpace(title)
	if url != "" {
		_, ok := l.urls[url]
		return ok
	}
	if title == "" {
		return false
	}
	_, ok := l.titles[title]
	return ok
}

// Mark records the URL and title in memory. Empty values are not stored.
func (l *ImportLog) Mark(url, title string) {
	if url = strings.TrimSpace(url); url != "" {
		l.urls[url] = struct{}{}
	}
	if title = strings.TrimSpace(title); title != "" {
		l.titles[title] = struct{}{}
	}
}

// Len returns the number of distinct URLs plus titles in the log.
func (l *ImportLog) Len() int {
	return len(l.urls) + len(l.titles)
}

// SaveLogs persists all marks from the given logs in one transaction, so a
// failed save leaves every log untouched on disk.
func (s *Store) SaveLogs(ctx context.Context, logs ...*ImportLog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin log tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, log := range logs {
		if log == nil {
			continue
		}
		for url := range log.urls {
			if _, err := tx.ExecContext(ctx,
				"INSERT OR IGNORE INTO import_log (log_key, kind, value) VALUES (?, 'url', ?)",
				log.Key, url,
			); err != nil {
				return fmt.Errorf("save import log %s: %w", log.Key, err)
			}
		}
		for title := range log.titles {
			if _, err := tx.ExecContext(ctx,
				"INSERT OR IGNORE INTO import_log (log_key, kind, value) VALUES (?, 'title', ?)",
				log.Key, title,
			); err != nil {
				return fmt.Errorf("save import log %s: %w", log.Key, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit log tx: %w", err)
	}
	return nil
}

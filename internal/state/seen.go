package state

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// SeenSet is the permanent set of canonical URLs the monitor has already
// emitted into a digest. Adds hit the database immediately so a crashed run
// never re-offers what it already wrote out. Safe for concurrent use by the
// connector pool.
type SeenSet struct {
	store *Store

	mu   sync.Mutex
	urls map[string]struct{}
}

// LoadSeen reads the full seen set into memory.
func (s *Store) LoadSeen(ctx context.Context) (*SeenSet, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT url FROM seen_urls")
	if err != nil {
		return nil, fmt.Errorf("load seen urls: %w", err)
	}
	defer rows.Close()

	urls := make(map[string]struct{})
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("scan seen url: %w", err)
		}
		urls[url] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate seen urls: %w", err)
	}
	return &SeenSet{store: s, urls: urls}, nil
}

// Contains reports whether the URL was emitted by an earlier run or already
// added during this one.
func (ss *SeenSet) Contains(url string) bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	_, ok := ss.urls[url]
	return ok
}

// Add records the URL as seen. Adding an already present URL is a no-op.
func (ss *SeenSet) Add(ctx context.Context, url string) error {
	if url == "" {
		return nil
	}
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if _, ok := ss.urls[url]; ok {
		return nil
	}
	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := ss.store.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO seen_urls (url, first_seen) VALUES (?, ?)", url, now,
	); err != nil {
		return fmt.Errorf("add seen url: %w", err)
	}
	ss.urls[url] = struct{}{}
	return nil
}

// Len returns the number of URLs in the set.
func (ss *SeenSet) Len() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return len(ss.urls)
}

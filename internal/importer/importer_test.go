package importer_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"radar/internal/catalog"
	"radar/internal/importer"
	"radar/internal/logging"
	"radar/internal/notion"
	"radar/internal/state"
	"radar/internal/testsupport"
)

const reviewedDigest = `# 1) Flux ControlNet Union
URL: https://example.com/flux-cn
Summary: Unified control model.
Use case: Pose and depth control.
Requirements: 24 GB VRAM.
Changes: First release.
Category: Control
Ecosystem: Flux
Signal: true

# 2) Training Notes
Summary: A note without a link.

# 3) Broken Entry
URL: https://example.com/broken
Summary: The API will reject this one.
`

type fakeCreator struct {
	pages   []notion.Page
	failURL string
}

func (f *fakeCreator) CreatePage(ctx context.Context, page notion.Page) (string, error) {
	if f.failURL != "" && page.URL == f.failURL {
		return "", errors.New("notion says no")
	}
	f.pages = append(f.pages, page)
	return "page-id", nil
}

func TestRunCreatesMarksAndArchives(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.WriteText(t, cfg.ImportDigestPath(), reviewedDigest)

	creator := &fakeCreator{}
	outcome, err := importer.Run(context.Background(), cfg, logging.NewNop(), store, creator)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if outcome.Created != 3 || outcome.Skipped != 0 || outcome.Failed != 0 {
		t.Fatalf("outcome = %+v", outcome)
	}

	first := creator.pages[0]
	if first.Category != catalog.CategoryControl || first.Ecosystem != catalog.EcosystemFlux {
		t.Fatalf("enriched fields not carried over: %+v", first)
	}
	if !first.Signal {
		t.Fatal("signal flag lost")
	}
	if first.Source != catalog.SourceBlog {
		t.Fatalf("Source = %q, want guessed from url", first.Source)
	}

	// the working digest is archived and truncated
	if outcome.ArchivePath == "" {
		t.Fatal("missing archive path")
	}
	if _, err := os.Stat(outcome.ArchivePath); err != nil {
		t.Fatalf("archive file: %v", err)
	}
	if got := testsupport.ReadText(t, cfg.ImportDigestPath()); got != "" {
		t.Fatalf("working digest not truncated: %q", got)
	}

	// the marks survive into a fresh log load
	global, err := store.LoadLog(context.Background(), state.GlobalKey)
	if err != nil {
		t.Fatalf("LoadLog: %v", err)
	}
	if !global.Has("https://example.com/flux-cn", "") {
		t.Fatal("created url not in global log")
	}
	if !global.Has("", "Training Notes") {
		t.Fatal("url-less record not suppressed by title")
	}
}

func TestRunSkipsDuplicatesOnSecondImport(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.WriteText(t, cfg.ImportDigestPath(), reviewedDigest)

	creator := &fakeCreator{}
	if _, err := importer.Run(context.Background(), cfg, logging.NewNop(), store, creator); err != nil {
		t.Fatalf("first Run: %v", err)
	}

	// same digest again
	testsupport.WriteText(t, cfg.ImportDigestPath(), reviewedDigest)
	outcome, err := importer.Run(context.Background(), cfg, logging.NewNop(), store, creator)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if outcome.Created != 0 || outcome.Skipped != 3 {
		t.Fatalf("second import outcome = %+v", outcome)
	}
	if len(creator.pages) != 3 {
		t.Fatalf("pages created across both runs = %d, want 3", len(creator.pages))
	}
}

func TestRunGlobalLogSuppressesAcrossDays(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.WriteText(t, cfg.ImportDigestPath(), reviewedDigest)

	// an import from an earlier day: only the global log carries the mark,
	// today's daily log starts empty
	global, err := store.LoadLog(context.Background(), state.GlobalKey)
	if err != nil {
		t.Fatalf("LoadLog: %v", err)
	}
	global.Mark("https://example.com/flux-cn", "Flux ControlNet Union")
	if err := store.SaveLogs(context.Background(), global); err != nil {
		t.Fatalf("SaveLogs: %v", err)
	}

	creator := &fakeCreator{}
	outcome, err := importer.Run(context.Background(), cfg, logging.NewNop(), store, creator)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if outcome.Created != 2 || outcome.Skipped != 1 {
		t.Fatalf("outcome = %+v", outcome)
	}
	for _, page := range creator.pages {
		if page.URL == "https://example.com/flux-cn" {
			t.Fatal("globally suppressed record was recommitted")
		}
	}
}

func TestRunFailedRecordsAreRetryable(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.WriteText(t, cfg.ImportDigestPath(), reviewedDigest)

	creator := &fakeCreator{failURL: "https://example.com/broken"}
	outcome, err := importer.Run(context.Background(), cfg, logging.NewNop(), store, creator)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if outcome.Created != 2 || outcome.Failed != 1 {
		t.Fatalf("outcome = %+v", outcome)
	}
	if len(outcome.FailedTitles) != 1 || outcome.FailedTitles[0] != "Broken Entry" {
		t.Fatalf("FailedTitles = %v", outcome.FailedTitles)
	}
	// digest archived even with failures
	if got := testsupport.ReadText(t, cfg.ImportDigestPath()); got != "" {
		t.Fatalf("working digest not truncated after failures: %q", got)
	}

	// the failed record is not suppressed, a retry creates it
	global, err := store.LoadLog(context.Background(), state.GlobalKey)
	if err != nil {
		t.Fatalf("LoadLog: %v", err)
	}
	if global.Has("https://example.com/broken", "Broken Entry") {
		t.Fatal("failed record must stay retryable")
	}
}

func TestRunEmptyDigest(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.WriteText(t, cfg.ImportDigestPath(), "  \n")

	_, err := importer.Run(context.Background(), cfg, logging.NewNop(), store, &fakeCreator{})
	if !errors.Is(err, importer.ErrEmptyDigest) {
		t.Fatalf("err = %v, want ErrEmptyDigest", err)
	}
	// nothing archived for an empty digest
	entries, _ := os.ReadDir(cfg.Paths.ArchiveDir)
	if len(entries) != 0 {
		t.Fatalf("archive dir has %d entries, want 0", len(entries))
	}
}

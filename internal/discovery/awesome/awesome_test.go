package awesome_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"radar/internal/catalog"
	"radar/internal/discovery"
	"radar/internal/discovery/awesome"
	"radar/internal/state"
	"radar/internal/testsupport"
)

const readme = `# Awesome ComfyUI

Some intro text.

## New Workflows

* [**ComfyUI-NodePack**](https://github.com/someone/ComfyUI-NodePack): A pack of utility nodes.
* [**🎨 StylePainter**](https://github.com/artist/StylePainter)
* not a list entry
* [**External Tool**](https://example.com/not-github): ignored, not a GitHub link.

## Trending Workflows

* [**ComfyUI-GGUF**](https://github.com/city96/ComfyUI-GGUF) (⭐+321): GGUF quantization support.

## Unrelated Section

* [**Hidden**](https://github.com/x/hidden): never read.
`

func newSeen(t *testing.T) *state.SeenSet {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	seen, err := store.LoadSeen(context.Background())
	if err != nil {
		t.Fatalf("LoadSeen: %v", err)
	}
	return seen
}

func TestFetchParsesCuratedSections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, readme)
	}))
	defer server.Close()

	seen := newSeen(t)
	conn := awesome.New(awesome.WithURL(server.URL), awesome.WithHTTPClient(server.Client()))

	got, err := conn.Fetch(context.Background(), discovery.Window{}, seen)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d candidates, want 3: %+v", len(got), got)
	}

	if got[0].Title != "ComfyUI-NodePack" || got[0].Summary != "A pack of utility nodes." {
		t.Fatalf("first candidate: %+v", got[0])
	}
	if got[0].Traction != 0 {
		t.Fatalf("new section traction = %d, want 0", got[0].Traction)
	}

	if got[1].Title != "StylePainter" {
		t.Fatalf("emoji not stripped from name: %q", got[1].Title)
	}

	trending := got[2]
	if trending.Title != "ComfyUI-GGUF" {
		t.Fatalf("trending title = %q", trending.Title)
	}
	if trending.Traction != 50+321 {
		t.Fatalf("trending traction = %d, want base 50 plus delta 321", trending.Traction)
	}
	if trending.Source != catalog.SourceAwesomeList {
		t.Fatalf("Source = %q", trending.Source)
	}

	for _, c := range got {
		if !seen.Contains(c.URL) {
			t.Fatalf("url %s not registered in seen set", c.URL)
		}
	}
}

func TestFetchSkipsSeenEntries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, readme)
	}))
	defer server.Close()

	seen := newSeen(t)
	if err := seen.Add(context.Background(), "https://github.com/someone/ComfyUI-NodePack"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	conn := awesome.New(awesome.WithURL(server.URL), awesome.WithHTTPClient(server.Client()))
	got, err := conn.Fetch(context.Background(), discovery.Window{}, seen)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	for _, c := range got {
		if c.URL == "https://github.com/someone/ComfyUI-NodePack" {
			t.Fatal("seen entry re-emitted")
		}
	}
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
}

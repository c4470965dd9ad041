package notion_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"radar/internal/catalog"
	"radar/internal/logging"
	"radar/internal/notion"
)

func newClient(t *testing.T, server *httptest.Server) *notion.Client {
	t.Helper()
	client, err := notion.New("secret-token", "db-123", server.URL,
		notion.WithHTTPClient(server.Client()),
		notion.WithLogger(logging.NewNop()))
	if err != nil {
		t.Fatalf("notion.New: %v", err)
	}
	return client
}

func TestCreatePagePayload(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/pages" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret-token" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Notion-Version"); got != "2022-06-28" {
			t.Errorf("Notion-Version = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		fmt.Fprint(w, `{"id":"page-1"}`)
	}))
	defer server.Close()

	client := newClient(t, server)
	id, err := client.CreatePage(context.Background(), notion.Page{
		Title:        "Flux ControlNet Union",
		URL:          "https://example.com/flux-cn",
		Summary:      "Unified control model.",
		UseCase:      "Pose and depth control.",
		Requirements: "24 GB VRAM.",
		Impact:       "First release.",
		Category:     catalog.CategoryControl,
		Source:       catalog.SourceGitHub,
		Ecosystem:    catalog.EcosystemFlux,
		Signal:       true,
	})
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}
	if id != "page-1" {
		t.Fatalf("id = %q", id)
	}

	parent := captured["parent"].(map[string]any)
	if parent["database_id"] != "db-123" {
		t.Fatalf("database_id = %v", parent["database_id"])
	}
	props := captured["properties"].(map[string]any)
	if _, ok := props["URL"]; !ok {
		t.Fatal("URL property missing")
	}
	category := props["Category"].(map[string]any)["select"].(map[string]any)
	if category["name"] != "Control" {
		t.Fatalf("Category = %v", category["name"])
	}
	status := props["Status"].(map[string]any)["select"].(map[string]any)
	if status["name"] != "To review" {
		t.Fatalf("Status = %v", status["name"])
	}
	priority := props["Priority"].(map[string]any)["select"].(map[string]any)
	if priority["name"] != "Low" {
		t.Fatalf("Priority = %v", priority["name"])
	}
	signal := props["Signal"].(map[string]any)
	if signal["checkbox"] != true {
		t.Fatal("Signal checkbox not set")
	}
	cover := captured["cover"].(map[string]any)["external"].(map[string]any)
	if got := cover["url"].(string); !strings.Contains(got, "cat_Control") {
		t.Fatalf("cover url = %q, want category default", got)
	}
}

func TestCreatePageOmitsEmptyURLAndUsesExplicitCover(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		fmt.Fprint(w, `{"id":"page-2"}`)
	}))
	defer server.Close()

	client := newClient(t, server)
	_, err := client.CreatePage(context.Background(), notion.Page{
		Title:    "Title only note",
		Image:    "https://img.example.com/cover.png",
		Category: catalog.CategoryKnowledge,
	})
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}

	props := captured["properties"].(map[string]any)
	if _, ok := props["URL"]; ok {
		t.Fatal("empty URL must be omitted")
	}
	cover := captured["cover"].(map[string]any)["external"].(map[string]any)
	if cover["url"] != "https://img.example.com/cover.png" {
		t.Fatalf("cover url = %v, want explicit image", cover["url"])
	}
}

func TestCreatePageTruncatesLongFields(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		fmt.Fprint(w, `{"id":"page-3"}`)
	}))
	defer server.Close()

	client := newClient(t, server)
	_, err := client.CreatePage(context.Background(), notion.Page{
		Title:   strings.Repeat("t", 300),
		Summary: strings.Repeat("s", 3000),
	})
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}

	props := captured["properties"].(map[string]any)
	name := props["Name"].(map[string]any)["title"].([]any)[0].(map[string]any)
	title := name["text"].(map[string]any)["content"].(string)
	if len(title) != 200 {
		t.Fatalf("title length = %d, want 200", len(title))
	}
	summary := props["Summary"].(map[string]any)["rich_text"].([]any)[0].(map[string]any)
	content := summary["text"].(map[string]any)["content"].(string)
	if len(content) != 2000 {
		t.Fatalf("summary length = %d, want 2000", len(content))
	}
}

func TestCreatePageErrorIncludesAPIDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"message":"validation_error"}`)
	}))
	defer server.Close()

	client := newClient(t, server)
	_, err := client.CreatePage(context.Background(), notion.Page{Title: "x"})
	if err == nil || !strings.Contains(err.Error(), "validation_error") {
		t.Fatalf("err = %v, want API detail", err)
	}
}

func TestArchivePage(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/pages/page-9" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&captured)
		fmt.Fprint(w, `{"id":"page-9"}`)
	}))
	defer server.Close()

	client := newClient(t, server)
	if err := client.ArchivePage(context.Background(), "page-9", true); err != nil {
		t.Fatalf("ArchivePage: %v", err)
	}
	if captured["archived"] != true {
		t.Fatalf("archived = %v", captured["archived"])
	}
}

package dedup_test

import (
	"testing"

	"radar/internal/catalog"
	"radar/internal/dedup"
)

func TestNormalizeTitle(t *testing.T) {
	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"version and platform stripped", "WanVideo LoRA v2.1 (SDXL)", "wanvideo lora"},
		{"already bare", "wanvideo lora sdxl", "wanvideo lora"},
		{"unicode decoration", "🔥 Flux Redux Toolkit 🔥", "redux toolkit"},
		{"separators collapse", "ip_adapter-plus [face]", "ip adapter plus face"},
		{"version stripped before platform token", "Detail Tweaker for SD 1.5", "detail tweaker for sd"},
		{"bare number", "Upscaler 4", "upscaler"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := dedup.NormalizeTitle(tc.title); got != tc.want {
				t.Fatalf("NormalizeTitle(%q) = %q, want %q", tc.title, got, tc.want)
			}
		})
	}
}

func TestNormalizeTitleDoesNotMergeShortNames(t *testing.T) {
	a := dedup.NormalizeTitle("AnimateDiff Lightning")
	b := dedup.NormalizeTitle("AnimateDiff Evolved")
	if a == b {
		t.Fatalf("distinct artifacts normalized to the same key %q", a)
	}
}

func TestExactFirstOccurrenceWins(t *testing.T) {
	in := []catalog.Candidate{
		{Title: "first", URL: "https://example.com/a", Source: catalog.SourceGitHub},
		{Title: "second", URL: "https://example.com/b"},
		{Title: "dup of first", URL: "https://example.com/a", Source: catalog.SourceBlog},
	}
	kept, dropped := dedup.Exact(in)
	if len(kept) != 2 {
		t.Fatalf("kept %d candidates, want 2", len(kept))
	}
	if kept[0].Title != "first" || kept[1].Title != "second" {
		t.Fatalf("unexpected kept order: %q, %q", kept[0].Title, kept[1].Title)
	}
	if len(dropped) != 1 || dropped[0].Title != "dup of first" {
		t.Fatalf("unexpected dropped set: %+v", dropped)
	}
	if kept[0].Source != catalog.SourceGitHub {
		t.Fatalf("survivor source = %q, want first occurrence's source", kept[0].Source)
	}
}

func TestFuzzyCollapsesVersionVariants(t *testing.T) {
	in := []catalog.Candidate{
		{Title: "WanVideo LoRA v2.1 (SDXL)", URL: "https://example.com/a"},
		{Title: "wanvideo lora sdxl", URL: "https://example.com/b"},
		{Title: "Completely Different Thing", URL: "https://example.com/c"},
	}
	kept, dropped := dedup.Fuzzy(in)
	if len(kept) != 2 {
		t.Fatalf("kept %d candidates, want 2", len(kept))
	}
	if kept[0].Title != "WanVideo LoRA v2.1 (SDXL)" {
		t.Fatalf("survivor = %q, want the first occurrence", kept[0].Title)
	}
	if len(dropped) != 1 || dropped[0].URL != "https://example.com/b" {
		t.Fatalf("unexpected dropped set: %+v", dropped)
	}
}

func TestFuzzyEmptyInput(t *testing.T) {
	kept, dropped := dedup.Fuzzy(nil)
	if len(kept) != 0 || len(dropped) != 0 {
		t.Fatalf("expected empty results, got kept=%d dropped=%d", len(kept), len(dropped))
	}
}

package catalog_test

import (
	"testing"

	"radar/internal/catalog"
)

func TestIsRelevantNoiseWinsOverSignal(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"ComfyUI Showcase Gallery", false},
		{"NSFW LoRA collection for SDXL", false},
		{"my personal workflow backup", false},
		{"ComfyUI custom node for video generation", true},
		{"Flux controlnet loader", true},
		{"GGUF quantized checkpoint", true},
		{"a cookbook for sourdough bread", false},
	}
	for _, tc := range cases {
		if got := catalog.IsRelevant(tc.text); got != tc.want {
			t.Errorf("IsRelevant(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestIsTrivialNameUsesShortForm(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"someuser/test", true},
		{"someuser/tmp-stuff", true},
		{"someuser/my-lora", true},
		{"ab12", true},
		{"someuser/ComfyUI-WanVideoWrapper", false},
		{"kohya-ss/sd-scripts", false},
	}
	for _, tc := range cases {
		if got := catalog.IsTrivialName(tc.name); got != tc.want {
			t.Errorf("IsTrivialName(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestImpactHitsCountsMatches(t *testing.T) {
	if got := catalog.ImpactHits("flux release with gguf quantization"); got < 3 {
		t.Fatalf("expected at least 3 impact hits, got %d", got)
	}
	if got := catalog.ImpactHits("nothing interesting here"); got != 0 {
		t.Fatalf("expected 0 impact hits, got %d", got)
	}
}

func TestGuessSource(t *testing.T) {
	cases := []struct {
		url  string
		want catalog.Source
	}{
		{"https://github.com/a/b", catalog.SourceGitHub},
		{"https://huggingface.co/a/b", catalog.SourceHuggingFace},
		{"https://civitai.com/models/1", catalog.SourceCivitai},
		{"https://example.com/docs/guide", catalog.SourceDocs},
		{"https://blog.example.com/post", catalog.SourceBlog},
	}
	for _, tc := range cases {
		if got := catalog.GuessSource(tc.url); got != tc.want {
			t.Errorf("GuessSource(%q) = %v, want %v", tc.url, got, tc.want)
		}
	}
}

func TestGuessCategoryMotionBeforeControl(t *testing.T) {
	// "video" and "controlnet" both present: Motion takes precedence.
	got := catalog.GuessCategory("controlnet for video generation", "")
	if got != catalog.CategoryMotion {
		t.Fatalf("expected Motion, got %v", got)
	}

	if got := catalog.GuessCategory("IP-Adapter plus", ""); got != catalog.CategoryControl {
		t.Fatalf("expected Control, got %v", got)
	}
	if got := catalog.GuessCategory("4x ESRGAN upscaler", ""); got != catalog.CategoryPostprocessing {
		t.Fatalf("expected Postprocessing, got %v", got)
	}
	if got := catalog.GuessCategory("something unclassifiable", ""); got != catalog.CategoryWorkflowNode {
		t.Fatalf("expected Workflow / Node fallback, got %v", got)
	}
}

func TestGuessEcosystem(t *testing.T) {
	cases := []struct {
		title string
		want  catalog.Ecosystem
	}{
		{"WanVideo wrapper update", catalog.EcosystemWan},
		{"Qwen2.5 release", catalog.EcosystemQwen},
		{"flux dev lora", catalog.EcosystemFlux},
		{"Illustrious style", catalog.EcosystemSDXL},
		{"sd1.5 checkpoint", catalog.EcosystemSD15},
		{"ComfyUI manager", catalog.EcosystemComfyUI},
		{"generic diffusion news", catalog.EcosystemMulti},
	}
	for _, tc := range cases {
		if got := catalog.GuessEcosystem(tc.title, "", ""); got != tc.want {
			t.Errorf("GuessEcosystem(%q) = %v, want %v", tc.title, got, tc.want)
		}
	}
}

package catalog

import "strings"

// Category is the tracking-store classification assigned at import time.
type Category string

const (
	CategoryGeneration     Category = "Generation"
	CategoryControl        Category = "Control"
	CategoryMotion         Category = "Motion"
	CategoryLoRAAdapter    Category = "LoRA / Adapter"
	CategoryPostprocessing Category = "Postprocessing"
	CategoryWorkflowNode   Category = "Workflow / Node"
	CategoryTooling        Category = "Tooling"
	CategoryKnowledge      Category = "Knowledge"
)

// GuessSource derives a source tag from a canonical URL.
func GuessSource(url string) Source {
	u := strings.ToLower(url)
	switch {
	case strings.Contains(u, "github.com"):
		return SourceGitHub
	case strings.Contains(u, "huggingface.co"):
		return SourceHuggingFace
	case strings.Contains(u, "civitai.com"):
		return SourceCivitai
	case strings.Contains(u, "docs") || strings.Contains(u, "documentation"):
		return SourceDocs
	default:
		return SourceBlog
	}
}

func containsAny(haystack string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// GuessCategory classifies a record from its title and body text. Motion is
// checked before Control so video terms are not misread as control terms.
func GuessCategory(title, body string) Category {
	t := strings.ToLower(title + " " + body)
	switch {
	case containsAny(t, "motion", "video", "animate", "animation", "i2v", "t2v", "vid2vid"):
		return CategoryMotion
	case containsAny(t, "controlnet", "control net", "ip-adapter", "ipadapter",
		"ip adapter", "pose", "depth", "canny", "inpaint", "reference"):
		return CategoryControl
	case containsAny(t, "lora", "lycoris", "lcm", "adapter"):
		return CategoryLoRAAdapter
	case containsAny(t, "upscal", "esrgan", "swinir", "restore", "enhance", "super resolution"):
		return CategoryPostprocessing
	case containsAny(t, "manager", "downloader", "installer", "hub", "sync"):
		return CategoryTooling
	case containsAny(t, "paper", "arxiv", "doc", "guide", "tutorial", "survey"):
		return CategoryKnowledge
	case containsAny(t, "node", "custom node", "comfyui-", "workflow", "pipeline"):
		return CategoryWorkflowNode
	case containsAny(t, "checkpoint", "model", "flux", "sdxl", "stable diffusion", "qwen"):
		return CategoryGeneration
	default:
		// Most unclassified finds in this domain are custom nodes.
		return CategoryWorkflowNode
	}
}

// GuessEcosystem derives an ecosystem hint from title, body, and URL.
func GuessEcosystem(title, body, url string) Ecosystem {
	t := strings.ToLower(title + " " + body + " " + url)
	switch {
	case containsAny(t, "wan2", "wanvideo", "wan video", "wan2.1", " wan "):
		return EcosystemWan
	case containsAny(t, "qwen", "qwen-vl", "qwen2"):
		return EcosystemQwen
	case strings.Contains(t, "flux"):
		return EcosystemFlux
	case containsAny(t, "sdxl", "pony", "illustrious"):
		return EcosystemSDXL
	case containsAny(t, "sd 1.5", "sd1.5", "sd15", "stable-diffusion-v1"):
		return EcosystemSD15
	case containsAny(t, "comfyui", "comfy ui", "comfy-ui"):
		return EcosystemComfyUI
	default:
		return EcosystemMulti
	}
}

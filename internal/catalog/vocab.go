package catalog

import (
	"regexp"
	"strings"
)

// Noise terms force rejection regardless of any signal match: galleries,
// prompt/asset packs, personal or throwaway content, NSFW collections.
var noiseRe = regexp.MustCompile(`(?i)\b(showcase|prompt[_\-\s]?pack|style[_\-\s]?pack|art[_\-\s]?pack|` +
	`gallery|aesthetic|wallpaper|nsfw|embedding[_\-\s]?pack|` +
	`test\d*$|sandbox|dummy|placeholder|backup|personal|private)\b`)

// Signal terms mark relevant technical artifacts: architectures, model
// families, pipeline/node/workflow vocabulary.
var signalRe = regexp.MustCompile(`(?i)\b(comfyui|controlnet|lora|lycori|lcm|flux|wan|qwen|sdxl|` +
	`sd[_\-\s]?1[_\-\s]?5|checkpoint|upscaler|ipadapter|ip[_\-\s]?adapter|` +
	`animatediff|video|motion|node|workflow|loader|pipeline|` +
	`diffusion|inpaint|outpaint|refiner|vae|clip|t5|` +
	`gguf|safetensor|hunyuan|mochi|ltx|cogvideo|wan2|` +
	`image[_\-\s]?to[_\-\s]?video|text[_\-\s]?to[_\-\s]?video)\b`)

// Trivial identifiers: obvious test/personal names and bare alphanumeric codes.
var trivialNameRe = regexp.MustCompile(`(?i)^(test|sandbox|backup|temp|tmp|untitled|model|lora|my[_\-]|` +
	`[a-z]{1,4}\d{1,4}$)`)

// Impact keywords contribute to scoring: release markers, quantization
// formats, named model families, capability keywords.
var impactRe = regexp.MustCompile(`(?i)\b(release|v\d|fp8|quantiz|gguf|flux|wan|qwen|hunyuan|ltx|cogvideo|` +
	`mochi|soulx|mova|lightning|turbo|feat|wrapper|trainer|xl|` +
	`ip.adapter|controlnet|animatediff|motion|video|i2v|t2v|` +
	`upscal|esrgan|restore|inpaint|refiner)\b`)

// IsRelevant reports whether text describes a relevant artifact. Any noise
// term rejects outright; otherwise at least one signal term must match.
func IsRelevant(text string) bool {
	if noiseRe.MatchString(text) {
		return false
	}
	return signalRe.MatchString(text)
}

// IsTrivialName reports whether an identifier's short form (last path
// segment) matches a generic or throwaway naming pattern.
func IsTrivialName(name string) bool {
	short := name
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		short = name[idx+1:]
	}
	return trivialNameRe.MatchString(short)
}

// ImpactHits counts impact-keyword matches in text.
func ImpactHits(text string) int {
	return len(impactRe.FindAllString(text, -1))
}

package catalog

import (
	"strings"
	"time"
)

// Source identifies the external catalog a candidate was discovered through.
type Source string

const (
	SourceGitHub      Source = "GitHub"
	SourceHuggingFace Source = "HuggingFace"
	SourceCivitai     Source = "Civitai"
	SourceBlog        Source = "Blog"
	SourceDocs        Source = "Docs"
	SourceOpenModelDB Source = "OpenModelDB"
	SourceAwesomeList Source = "AwesomeList"
)

// Ecosystem is the model family or tooling ecosystem a candidate belongs to.
type Ecosystem string

const (
	EcosystemFlux    Ecosystem = "Flux"
	EcosystemWan     Ecosystem = "Wan"
	EcosystemQwen    Ecosystem = "Qwen"
	EcosystemSDXL    Ecosystem = "SDXL"
	EcosystemSD15    Ecosystem = "SD 1.5"
	EcosystemComfyUI Ecosystem = "ComfyUI"
	EcosystemMulti   Ecosystem = "Multi"
)

// Candidate is one discovered artifact mention, pre-dedup. URL is the
// canonical identifier and is empty only for sourceless notes, never for
// network-fetched records.
type Candidate struct {
	Title        string
	URL          string
	Summary      string
	Usage        string
	Requirements string
	ChangeNotes  string
	Source       Source
	Ecosystem    Ecosystem
	Traction     int
	FetchedAt    time.Time
}

// SearchText concatenates the free-text fields that scoring and relevance
// heuristics inspect.
func (c Candidate) SearchText() string {
	return strings.ToLower(c.Title + " " + c.Summary + " " + c.ChangeNotes)
}

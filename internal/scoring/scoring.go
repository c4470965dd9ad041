// Package scoring assigns each candidate a deterministic 0-100 score and
// ranks batches by it. The score is additive across four components: source
// reliability, impact keyword hits, ecosystem weight, and community
// traction.
package scoring

import (
	"sort"
	"strings"

	"radar/internal/catalog"
)

// Scored pairs a candidate with its computed score.
type Scored struct {
	catalog.Candidate
	Score int
}

var sourceWeights = map[catalog.Source]int{
	catalog.SourceGitHub:      30,
	catalog.SourceBlog:        25,
	catalog.SourceHuggingFace: 20,
	catalog.SourceCivitai:     15,
	catalog.SourceDocs:        10,
	catalog.SourceOpenModelDB: 10,
}

const defaultSourceWeight = 10

// Score computes the candidate's rank score. Same input always yields the
// same output; there is no recency or randomness component.
func Score(c catalog.Candidate) int {
	score := defaultSourceWeight
	if w, ok := sourceWeights[c.Source]; ok {
		score = w
	}

	hits := catalog.ImpactHits(c.SearchText())
	impact := hits * 6
	if impact > 30 {
		impact = 30
	}
	score += impact

	score += ecosystemWeight(c.Ecosystem)
	score += tractionWeight(c.Traction)

	if score > 100 {
		score = 100
	}
	return score
}

func ecosystemWeight(eco catalog.Ecosystem) int {
	e := strings.ToLower(string(eco))
	switch {
	case strings.Contains(e, "flux"), strings.Contains(e, "wan"), strings.Contains(e, "qwen"):
		return 20
	case strings.Contains(e, "sdxl"), strings.Contains(e, "comfyui"):
		return 10
	default:
		return 5
	}
}

func tractionWeight(traction int) int {
	switch {
	case traction >= 1000:
		return 20
	case traction >= 200:
		return 12
	case traction >= 50:
		return 6
	default:
		return 0
	}
}

// Rank scores every candidate and orders the result by descending score.
// The sort is stable, so equally scored candidates keep their input order.
func Rank(in []catalog.Candidate) []Scored {
	out := make([]Scored, 0, len(in))
	for _, c := range in {
		out = append(out, Scored{Candidate: c, Score: Score(c)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Package catalog defines the Candidate model shared across the discovery
// pipeline, plus the fixed heuristic vocabularies used to filter noise,
// detect trivial names, count impact keywords, and classify records.
//
// The vocabularies are deliberately plain compiled regexps over fixed term
// lists; extending a vocabulary means editing the term list, never the
// control flow around it.
package catalog

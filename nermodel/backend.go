package nermodel

import (
	"context"
)

// Candidate is one raw span a Backend's tagger produced, before label
// normalization or the name-acceptance filter are applied (extract.go owns
// both of those — a Backend just tags).
type Candidate struct {
	Value      string
	Label      string // raw model label, e.g. "B-PER", "GPE" — normalized by extract
	Confidence float64
}

// Backend is the capability every NER variant satisfies: given text
// and the languages detected for it, produce a
// sequence of tagged spans. Implementations must be safe to call
// repeatedly and independently on disjoint chunks — extract.NERExtractor
// calls Tag once per chunk.
type Backend interface {
	// Name identifies the backend for provenance and registry lookup.
	Name() string

	// Tag runs the model over text. An error wrapping ErrModelLoad is
	// treated by the caller (analyze.Run) as a fatal, run-aborting
	// failure on whichever call returns it; any other error fails only
	// that chunk, which analyze.Run logs and skips.
	Tag(ctx context.Context, text string, langs []string) ([]Candidate, error)
}

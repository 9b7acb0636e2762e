package nermodel

import (
	"context"
	"fmt"
	"regexp"
)

// ErrModelLoad is returned by a backend's Tag call when it has no
// external model wired. A recognizer that cannot load its model fails
// the whole run fast: extract.NERExtractor wraps and returns this error,
// and analyze.Run treats it as fatal rather than skipping the chunk.
var ErrModelLoad = fmt.Errorf("nermodel: model not loaded")

// Caller is the shape of a call into an external model-serving process
// (a transformer token-classifier, a zero-shot classification endpoint,
// ...). Wiring a real one is left to the deployment: NER model runtimes
// are explicitly out of scope for this repository.
type Caller func(ctx context.Context, text string, langs []string) ([]Candidate, error)

// sentenceBoundary is a minimal splitter for sequenceTaggerBackend;
// close enough to package chunk's sentence rule for a pre-tagging pass
// without importing it (nermodel must not depend on chunk: chunk
// depends on nothing NER-related, keep it that way).
var sentenceBoundary = regexp.MustCompile(`(?:[.?!])(?:\s+|$)`)

func splitSentencesSimple(text string) []string {
	return sentenceBoundary.Split(text, -1)
}

// sequenceTaggerBackend sentence-splits the chunk, then runs a single
// multilingual tagger over each sentence. With no
// Caller configured it falls back to the statistical backend per sentence
// — still a real, working default, since a sequence tagger is a much
// lighter model class than a transformer and plausibly ships without an
// external dependency.
type sequenceTaggerBackend struct {
	call Caller
}

// NewSequenceTaggerBackend returns the sequence-tagger variant. A nil
// caller falls back to the statistical backend, sentence by sentence.
func NewSequenceTaggerBackend(call Caller) Backend {
	return sequenceTaggerBackend{call: call}
}

func (b sequenceTaggerBackend) Name() string { return "sequence-tagger" }

func (b sequenceTaggerBackend) Tag(ctx context.Context, text string, langs []string) ([]Candidate, error) {
	var out []Candidate
	for _, sentence := range splitSentencesSimple(text) {
		if sentence == "" {
			continue
		}
		var (
			cands []Candidate
			err   error
		)
		if b.call != nil {
			cands, err = b.call(ctx, sentence, langs)
		} else {
			cands, err = statisticalBackend{}.Tag(ctx, sentence, langs)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, cands...)
	}
	return out, nil
}

// transformerBackend runs a token-classification model with span
// aggregation. This is a genuine external model runtime, so without a
// Caller it fails fast on first use via the model-load failure path.
type transformerBackend struct {
	call Caller
}

// NewTransformerBackend returns the transformer variant. A nil caller
// means no model is wired; Tag then returns ErrModelLoad.
func NewTransformerBackend(call Caller) Backend {
	return transformerBackend{call: call}
}

func (b transformerBackend) Name() string { return "transformer" }

func (b transformerBackend) Tag(ctx context.Context, text string, langs []string) ([]Candidate, error) {
	if b.call == nil {
		return nil, ErrModelLoad
	}
	return b.call(ctx, text, langs)
}

// zeroShotBackend runs a zero-shot classifier with the fixed label
// vocabulary {person, organization, location} and a confidence
// threshold. Also a genuine external model runtime; fails fast without
// a Caller.
type zeroShotBackend struct {
	call      Caller
	threshold float64
}

// NewZeroShotBackend returns the zero-shot variant. A nil caller means no
// model is wired; Tag then returns ErrModelLoad. Candidates below
// threshold are dropped when a caller is configured.
func NewZeroShotBackend(call Caller, threshold float64) Backend {
	return zeroShotBackend{call: call, threshold: threshold}
}

func (b zeroShotBackend) Name() string { return "zero-shot" }

func (b zeroShotBackend) Tag(ctx context.Context, text string, langs []string) ([]Candidate, error) {
	if b.call == nil {
		return nil, ErrModelLoad
	}
	cands, err := b.call(ctx, text, langs)
	if err != nil {
		return nil, err
	}
	if b.threshold <= 0 {
		return cands, nil
	}
	out := cands[:0:0]
	for _, c := range cands {
		if c.Confidence >= b.threshold {
			out = append(out, c)
		}
	}
	return out, nil
}

package aggregate

import (
	"math"
	"strings"
	"unicode"

	"github.com/c360studio/entity-analyzer/ontology"
)

// TrashLabel is the distinguished label the classifier emits for tokens
// that don't look like a plausible entity name.
const TrashLabel = "trash"

// plausibleLabel is the classifier's other label. Together they form the
// fixed two-label vocabulary the entropy formula's H_max is computed
// against.
const plausibleLabel = "plausible"

// classifierLabelCount is N_labels in the entropy formula: the size of the
// classifier's label vocabulary, not the number of distinct labels
// observed in any one call.
const classifierLabelCount = 2

// ConfidenceScorer classifies an aggregated NER group's raw value set and
// reports a confidence in [0,1]
type ConfidenceScorer interface {
	// Score returns the group confidence plus the per-value label the
	// auxiliary classifier assigned (index-aligned with values).
	Score(values []string) (confidence float64, labels []string)
}

// defaultConfidenceScorer is a small heuristic stand-in for the "auxiliary
// classifier trained to distinguish plausible entity names from trash
// tokens" that production deployments train externally. No such classifier
// ships in the example corpus (see DESIGN.md) — this applies the same
// shape-based heuristic already used for name acceptance (enough letters,
// at least one word) rather than a trained model.
type defaultConfidenceScorer struct{}

// NewDefaultConfidenceScorer returns the default ConfidenceScorer.
func NewDefaultConfidenceScorer() ConfidenceScorer {
	return defaultConfidenceScorer{}
}

func (defaultConfidenceScorer) Score(values []string) (float64, []string) {
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = classify(v)
	}
	return entropyConfidence(labels), labels
}

func classify(value string) string {
	norm := ontology.NormalizeName(value)
	if norm == "" {
		return TrashLabel
	}
	letters, total := 0, 0
	for _, r := range norm {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if total == 0 || float64(letters)/float64(total) < 0.6 {
		return TrashLabel
	}
	if len(strings.Fields(norm)) == 0 {
		return TrashLabel
	}
	return plausibleLabel
}

// entropyConfidence implements conf = 1 − H/H_max over the fixed
// {trash, plausible} label vocabulary.
func entropyConfidence(labels []string) float64 {
	if len(labels) == 0 {
		return 1
	}
	counts := make(map[string]int, classifierLabelCount)
	for _, l := range labels {
		counts[l]++
	}
	n := float64(len(labels))
	var h float64
	for _, c := range counts {
		p := float64(c) / n
		h -= p * math.Log(p)
	}
	hMax := math.Log(classifierLabelCount)
	return 1 - h/hMax
}

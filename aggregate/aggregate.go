// Package aggregate deduplicates extract.Results into AggregatedResults,
//
package aggregate

import (
	"sync"

	"github.com/c360studio/entity-analyzer/extract"
	"github.com/c360studio/entity-analyzer/ontology"
)

// MaxResults bounds the number of distinct (key, tag) pairs held per
// source entity. Exceeding it is a silent rejection; prior
// inserts remain.
const MaxResults = 10000

// Result is one deduplicated (key, tag) group of extraction candidates.
type Result struct {
	Key           string
	Tag           ontology.Tag
	RawValues     []string
	SourceLabels  []string
	MaxConfidence float64
	HasConfidence bool
}

type resultKey struct {
	key string
	tag ontology.Tag
}

type bucket struct {
	rawValues     map[string]bool
	sourceLabels  map[string]bool
	maxConfidence float64
	hasConfidence bool
}

// Config configures the Aggregator's confidence filtering.
type Config struct {
	UseConfidence bool
	Scorer        ConfidenceScorer
	Threshold     float64 // fraction in (0,1)
}

// Aggregator deduplicates candidates into groups keyed by (dedup key, tag)
// and, on request, filters NER groups through a ConfidenceScorer.
type Aggregator struct {
	mu     sync.Mutex
	cfg    Config
	order  []resultKey
	groups map[resultKey]*bucket

	maxResultsExceeded int
}

// New creates an Aggregator. A nil cfg.Scorer is replaced with
// NewDefaultConfidenceScorer when cfg.UseConfidence is true.
func New(cfg Config) *Aggregator {
	if cfg.UseConfidence && cfg.Scorer == nil {
		cfg.Scorer = NewDefaultConfidenceScorer()
	}
	return &Aggregator{cfg: cfg, groups: make(map[resultKey]*bucket)}
}

// Add dedup-keys and inserts one extract.Result. Returns accepted=false
// when the value doesn't survive the tag's type cleaner, or when the
// MaxResults capacity bound would be exceeded by a new (key, tag) pair.
func (a *Aggregator) Add(r extract.Result) bool {
	key, ok := dedupKey(r.Tag, r.Value)
	if !ok {
		return false
	}
	rk := resultKey{key: key, tag: r.Tag}

	a.mu.Lock()
	defer a.mu.Unlock()

	b, exists := a.groups[rk]
	if !exists {
		if len(a.groups) >= MaxResults {
			a.maxResultsExceeded++
			return false
		}
		b = &bucket{rawValues: make(map[string]bool), sourceLabels: make(map[string]bool)}
		a.groups[rk] = b
		a.order = append(a.order, rk)
	}

	b.rawValues[r.Value] = true
	if r.SourceLabel != "" {
		b.sourceLabels[r.SourceLabel] = true
	}
	if r.HasConf && (!b.hasConfidence || r.Confidence > b.maxConfidence) {
		b.hasConfidence = true
		b.maxConfidence = r.Confidence
	}
	return true
}

// Len returns the number of distinct (key, tag) groups currently held.
func (a *Aggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.groups)
}

// MaxResultsExceeded returns the count of insertions rejected by the
// capacity bound.
func (a *Aggregator) MaxResultsExceeded() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.maxResultsExceeded
}

// IterResults yields every surviving group, applying confidence filtering
// to NER groups when the Aggregator was constructed with UseConfidence.
// Insertion order is preserved for determinism.
func (a *Aggregator) IterResults() []Result {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]Result, 0, len(a.order))
	for _, rk := range a.order {
		b := a.groups[rk]
		if a.cfg.UseConfidence && rk.tag.IsNER() && !a.passesConfidence(b) {
			continue
		}
		out = append(out, Result{
			Key:           rk.key,
			Tag:           rk.tag,
			RawValues:     setToSlice(b.rawValues),
			SourceLabels:  setToSlice(b.sourceLabels),
			MaxConfidence: b.maxConfidence,
			HasConfidence: b.hasConfidence,
		})
	}
	return out
}

func (a *Aggregator) passesConfidence(b *bucket) bool {
	values := setToSlice(b.rawValues)
	conf, labels := a.cfg.Scorer.Score(values)
	for _, l := range labels {
		if l == TrashLabel {
			return false
		}
	}
	return conf >= a.cfg.Threshold
}

func setToSlice(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for v := range m {
		out = append(out, v)
	}
	return out
}

// dedupKey derives the deduplication key: NER tags normalize through
// NormalizeName after type cleaning, every other tag uses the cleaned
// value directly.
func dedupKey(tag ontology.Tag, value string) (string, bool) {
	cleaned, ok := ontology.TypeClean(tag, value)
	if !ok {
		return "", false
	}
	if tag.IsNER() {
		return ontology.NormalizeName(cleaned), true
	}
	return cleaned, true
}

// Package mention implements the resolution carrier between aggregation
// and the resolution pipeline
package mention

import (
	"sort"

	"github.com/c360studio/entity-analyzer/ontology"
)

// Mention is the pure data carrier a resolve.Stage mutates in place.
// Invariants: a rejected mention never contributes to emission;
// ResolvedValues, when non-empty, are alternate spellings of the same
// referent as Values; CanonicalValue, when set, is the preferred
// display name.
type Mention struct {
	Key          string
	OriginalTag  ontology.Tag
	NERTag       ontology.Tag // PER, ORG, LOC, or OTHER; may change during resolution
	Values       []string
	SourceLabels []string
	EntityID     string // source entity id this mention was found in

	ResolvedValues   []string
	CanonicalValue   string
	ResolvedSchema   ontology.Schema
	ResolvedEntityID string

	Rejected bool
	Reason   string
	Stage    string
}

// FromAggregated builds the initial mention from an aggregate.Result's
// fields. NERTag is set to tag iff tag is one of PER/ORG/LOC, else
// OTHER.
func FromAggregated(key string, tag ontology.Tag, values, sources []string, entityID string) *Mention {
	nerTag := ontology.TagOther
	if tag.IsNER() {
		nerTag = tag
	}
	return &Mention{
		Key:          key,
		OriginalTag:  tag,
		NERTag:       nerTag,
		Values:       append([]string(nil), values...),
		SourceLabels: append([]string(nil), sources...),
		EntityID:     entityID,
	}
}

// Reject marks the mention rejected. Idempotent: once rejected, later
// calls don't overwrite the original reason/stage — the first rejection
// is the one that short-circuited the pipeline.
func (m *Mention) Reject(reason, stage string) {
	if m.Rejected {
		return
	}
	m.Rejected = true
	m.Reason = reason
	m.Stage = stage
}

// CurrentValues returns ResolvedValues when the pipeline has populated
// them, else the raw aggregated Values — the "current values" a stage
// operates on.
func (m *Mention) CurrentValues() []string {
	if len(m.ResolvedValues) > 0 {
		return m.ResolvedValues
	}
	return m.Values
}

// FirstValue returns a deterministic representative of CurrentValues:
// the lexicographically smallest value, so classification does not
// depend on set iteration order.
func (m *Mention) FirstValue() string {
	values := m.CurrentValues()
	if len(values) == 0 {
		return ""
	}
	best := values[0]
	for _, v := range values[1:] {
		if v < best {
			best = v
		}
	}
	return best
}

// Caption returns CanonicalValue if set, else the pick-best-name choice
// over CurrentValues: the longest value, tie-broken lexicographically for
// determinism (longer names tend to be the more complete/formal form).
func (m *Mention) Caption() string {
	if m.CanonicalValue != "" {
		return m.CanonicalValue
	}
	return pickBestName(m.CurrentValues())
}

func pickBestName(values []string) string {
	if len(values) == 0 {
		return ""
	}
	best := values[0]
	for _, v := range values[1:] {
		if len(v) > len(best) || (len(v) == len(best) && v < best) {
			best = v
		}
	}
	return best
}

// AllNames is the union of Caption, Values, and ResolvedValues.
func (m *Mention) AllNames() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(v string) {
		if v == "" || seen[v] {
			return
		}
		seen[v] = true
		out = append(out, v)
	}
	add(m.Caption())
	for _, v := range m.Values {
		add(v)
	}
	for _, v := range m.ResolvedValues {
		add(v)
	}
	sort.Strings(out)
	return out
}

// AnnotateValues is ResolvedValues when set, else Values — the values the
// annotator should substitute into indexText.
func (m *Mention) AnnotateValues() []string {
	if len(m.ResolvedValues) > 0 {
		return m.ResolvedValues
	}
	return m.Values
}

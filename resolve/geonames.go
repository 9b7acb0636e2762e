package resolve

import (
	"context"

	"github.com/c360studio/entity-analyzer/geodb"
	"github.com/c360studio/entity-analyzer/mention"
	"github.com/c360studio/entity-analyzer/ontology"
)

// geonamesSimilarityThreshold is the minimum Jaro similarity between a
// candidate value and a GeoDB match name for canonicalization to apply.
const geonamesSimilarityThreshold = 0.9

// GeonamesStage canonicalizes LOC mentions via GeoDB, contributing the
// matched country to the resolution context. It rejects a candidate
// value matched by the person-name heuristic, since those are almost
// always misclassified personal names rather than places.
type GeonamesStage struct {
	client          geodb.Client
	memo            *Memo[[]geodb.LocationMatch]
	rejectUnmatched bool
}

// NewGeonamesStage builds a stage backed by client. rejectUnmatched
// controls whether an LOC mention with no GeoDB match above threshold
// is rejected outright or left unresolved.
func NewGeonamesStage(client geodb.Client, rejectUnmatched bool) *GeonamesStage {
	return &GeonamesStage{
		client:          client,
		memo:            NewMemo[[]geodb.LocationMatch](0),
		rejectUnmatched: rejectUnmatched,
	}
}

func (s *GeonamesStage) Name() string { return "GeonamesStage" }

// PurgeMemo evicts cached GeoDB matches, forcing the next LOC mention for
// any given value back out to the client.
func (s *GeonamesStage) PurgeMemo() { s.memo.Purge() }

func (s *GeonamesStage) Process(ctx context.Context, m *mention.Mention, rc *mention.Context) {
	if m.NERTag != ontology.TagLoc {
		return
	}

	matched := false
	for _, v := range m.CurrentValues() {
		if isPerson(v) {
			continue
		}
		matches, err := s.tagLocations(ctx, v)
		if err != nil {
			continue
		}
		normInput := ontology.NormalizeName(v)
		for _, cand := range matches {
			if JaroSimilarity(normInput, ontology.NormalizeName(cand.Name)) > geonamesSimilarityThreshold {
				m.CanonicalValue = cand.Name
				rc.AddCountry(cand.CountryCode)
				matched = true
				break
			}
		}
		if matched {
			break
		}
	}

	if !matched && s.rejectUnmatched {
		m.Reject("location not found", s.Name())
	}
}

func (s *GeonamesStage) tagLocations(ctx context.Context, name string) ([]geodb.LocationMatch, error) {
	if cached, ok := s.memo.Get(name); ok {
		return cached, nil
	}
	matches, err := s.client.TagLocations(ctx, name)
	if err != nil {
		return nil, err
	}
	s.memo.Put(name, matches)
	return matches, nil
}

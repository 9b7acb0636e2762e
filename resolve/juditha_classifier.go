package resolve

import (
	"context"

	"github.com/c360studio/entity-analyzer/mention"
	"github.com/c360studio/entity-analyzer/namedb"
	"github.com/c360studio/entity-analyzer/ontology"
)

// classifierConfidenceThreshold is the minimum schema-prediction score
// JudithaClassifierStage will honor.
const classifierConfidenceThreshold = 0.9

// JudithaClassifierStage asks NameDB to predict a schema for the
// mention's representative value and reclassifies ner_tag accordingly,
// rejecting mentions that resolve to OTHER.
type JudithaClassifierStage struct {
	client namedb.Client
	memo   *Memo[[]namedb.SchemaPrediction]
}

// NewJudithaClassifierStage builds a stage backed by client, with its
// own memoization LRU.
func NewJudithaClassifierStage(client namedb.Client) *JudithaClassifierStage {
	return &JudithaClassifierStage{client: client, memo: NewMemo[[]namedb.SchemaPrediction](0)}
}

func (s *JudithaClassifierStage) Name() string { return "JudithaClassifierStage" }

// PurgeMemo evicts cached schema predictions, forcing the next mention for
// any given name back out to NameDB.
func (s *JudithaClassifierStage) PurgeMemo() { s.memo.Purge() }

func (s *JudithaClassifierStage) Process(ctx context.Context, m *mention.Mention, _ *mention.Context) {
	name := m.FirstValue()

	preds, err := s.predict(ctx, name)
	if err != nil {
		s.applyFallback(m)
		return
	}

	best, ok := topPrediction(preds, classifierConfidenceThreshold)
	if !ok {
		s.applyFallback(m)
		return
	}

	tag := best.NERTag
	// A LOC or OTHER prediction only sticks as LOC when the mention
	// already was LOC — LOC canonicalization belongs to GeonamesStage.
	// Anything else collapses to OTHER.
	if tag == ontology.TagLoc || tag == ontology.TagOther {
		if m.NERTag == ontology.TagLoc {
			tag = ontology.TagLoc
		} else {
			tag = ontology.TagOther
		}
	}
	// A long organization name occasionally scores as PER; keep the
	// RigourStage ORG call in that case.
	if m.NERTag == ontology.TagOrg && tag == ontology.TagPerson && len(name) > 20 {
		tag = ontology.TagOrg
	}

	m.NERTag = tag
	if m.NERTag == ontology.TagOther {
		m.Reject("classified as OTHER", s.Name())
	}
}

// applyFallback handles the no-confident-prediction case. RigourStage's
// PER determination is treated as settled, and a LOC mention passes
// through for GeonamesStage to judge; absent either, the ORG heuristic
// is tried once more before giving up to OTHER.
func (s *JudithaClassifierStage) applyFallback(m *mention.Mention) {
	switch {
	case m.NERTag == ontology.TagPerson || m.NERTag == ontology.TagLoc:
	case isOrg(m.FirstValue()):
		m.NERTag = ontology.TagOrg
	default:
		m.NERTag = ontology.TagOther
		m.Reject("classified as OTHER", s.Name())
	}
}

func (s *JudithaClassifierStage) predict(ctx context.Context, name string) ([]namedb.SchemaPrediction, error) {
	if cached, ok := s.memo.Get(name); ok {
		return cached, nil
	}
	preds, err := s.client.PredictSchema(ctx, name)
	if err != nil {
		return nil, err
	}
	s.memo.Put(name, preds)
	return preds, nil
}

// topPrediction returns the highest-scoring prediction at or above
// threshold, breaking ties by the lexicographically smallest tag name
// for determinism.
func topPrediction(preds []namedb.SchemaPrediction, threshold float64) (namedb.SchemaPrediction, bool) {
	var best namedb.SchemaPrediction
	found := false
	for _, p := range preds {
		if p.Score < threshold {
			continue
		}
		if !found || p.Score > best.Score || (p.Score == best.Score && p.NERTag < best.NERTag) {
			best = p
			found = true
		}
	}
	return best, found
}

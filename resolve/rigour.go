package resolve

import (
	"context"

	"github.com/c360studio/entity-analyzer/mention"
	"github.com/c360studio/entity-analyzer/ontology"
)

// RigourStage is the first resolution stage: a cheap heuristic PER/ORG
// classifier that never rejects a mention, plus title-prefix stripping.
type RigourStage struct{}

// NewRigourStage returns a RigourStage. It holds no state.
func NewRigourStage() *RigourStage { return &RigourStage{} }

func (RigourStage) Name() string { return "RigourStage" }

func (RigourStage) Process(_ context.Context, m *mention.Mention, _ *mention.Context) {
	first := m.FirstValue()
	switch {
	case isPerson(first):
		m.NERTag = ontology.TagPerson
		m.ResolvedValues = stripAllPrefixes(m.CurrentValues(), personPrefixes)
	case isOrg(first):
		m.NERTag = ontology.TagOrg
		m.ResolvedValues = stripAllPrefixes(m.CurrentValues(), orgPrefixes)
	default:
		m.ResolvedValues = stripAllPrefixes(m.CurrentValues(), genericPrefixes)
	}
}

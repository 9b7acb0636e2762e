package resolve

import (
	"context"
	"testing"

	"github.com/c360studio/entity-analyzer/mention"
	"github.com/c360studio/entity-analyzer/ontology"
	"github.com/stretchr/testify/assert"
)

func TestRigourStageClassifiesPerson(t *testing.T) {
	m := mention.FromAggregated("angela merkel", ontology.TagPerson, []string{"Dr. Angela Merkel"}, nil, "doc-1")
	NewRigourStage().Process(context.Background(), m, mention.NewContext())

	assert.Equal(t, ontology.TagPerson, m.NERTag)
	assert.Equal(t, []string{"Angela Merkel"}, m.ResolvedValues)
	assert.False(t, m.Rejected)
}

func TestRigourStageClassifiesOrg(t *testing.T) {
	m := mention.FromAggregated("circular plastics alliance gmbh", ontology.TagOrg,
		[]string{"The Circular Plastics Alliance GmbH"}, nil, "doc-1")
	NewRigourStage().Process(context.Background(), m, mention.NewContext())

	assert.Equal(t, ontology.TagOrg, m.NERTag)
	assert.Equal(t, []string{"Circular Plastics Alliance GmbH"}, m.ResolvedValues)
}

func TestRigourStageNeverRejects(t *testing.T) {
	m := mention.FromAggregated("xyzzy", ontology.TagOther, []string{"Xyzzy Plugh"}, nil, "doc-1")
	NewRigourStage().Process(context.Background(), m, mention.NewContext())
	assert.False(t, m.Rejected)
}

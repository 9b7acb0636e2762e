package resolve

import (
	"context"
	"testing"

	"github.com/c360studio/entity-analyzer/mention"
	"github.com/c360studio/entity-analyzer/namedb"
	"github.com/c360studio/entity-analyzer/ontology"
	"github.com/stretchr/testify/assert"
)

func TestJudithaClassifierHonorsConfidentPrediction(t *testing.T) {
	db := namedb.NewFake()
	db.Set("circular plastics alliance", namedb.Fixture{
		Predicted: []namedb.SchemaPrediction{{NERTag: ontology.TagOrg, Score: 0.97}},
	})

	m := mention.FromAggregated("circular plastics alliance", ontology.TagOrg,
		[]string{"circular plastics alliance"}, nil, "doc-1")
	NewJudithaClassifierStage(db).Process(context.Background(), m, mention.NewContext())

	assert.Equal(t, ontology.TagOrg, m.NERTag)
	assert.False(t, m.Rejected)
}

func TestJudithaClassifierFallsBackToPersonWhenUnknown(t *testing.T) {
	db := namedb.NewFake() // no fixture registered
	m := mention.FromAggregated("angela merkel", ontology.TagPerson, []string{"Angela Merkel"}, nil, "doc-1")
	m.NERTag = ontology.TagPerson // as RigourStage would have set

	NewJudithaClassifierStage(db).Process(context.Background(), m, mention.NewContext())

	assert.Equal(t, ontology.TagPerson, m.NERTag)
	assert.False(t, m.Rejected)
}

func TestJudithaClassifierRejectsOther(t *testing.T) {
	db := namedb.NewFake()
	m := mention.FromAggregated("xyzzy", ontology.TagOther, []string{"Xyzzy Plugh"}, nil, "doc-1")
	NewJudithaClassifierStage(db).Process(context.Background(), m, mention.NewContext())

	assert.True(t, m.Rejected)
	assert.Equal(t, "JudithaClassifierStage", m.Stage)
}

func TestJudithaClassifierPassesLOCThroughWhenUnknown(t *testing.T) {
	db := namedb.NewFake() // no fixture registered
	m := mention.FromAggregated("new york city", ontology.TagLoc, []string{"New York City"}, nil, "doc-1")

	NewJudithaClassifierStage(db).Process(context.Background(), m, mention.NewContext())

	assert.Equal(t, ontology.TagLoc, m.NERTag, "LOC mentions are GeonamesStage's to judge")
	assert.False(t, m.Rejected)
}

func TestJudithaClassifierDowngradesUnexpectedLOC(t *testing.T) {
	db := namedb.NewFake()
	db.Set("some company", namedb.Fixture{
		Predicted: []namedb.SchemaPrediction{{NERTag: ontology.TagLoc, Score: 0.95}},
	})
	m := mention.FromAggregated("some company", ontology.TagOrg, []string{"some company"}, nil, "doc-1")

	NewJudithaClassifierStage(db).Process(context.Background(), m, mention.NewContext())

	assert.Equal(t, ontology.TagOther, m.NERTag)
	assert.True(t, m.Rejected)
}

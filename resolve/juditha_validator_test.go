package resolve

import (
	"context"
	"testing"

	"github.com/c360studio/entity-analyzer/mention"
	"github.com/c360studio/entity-analyzer/namedb"
	"github.com/c360studio/entity-analyzer/ontology"
	"github.com/stretchr/testify/assert"
)

func TestJudithaValidatorRejectsInvalidPerson(t *testing.T) {
	db := namedb.NewFake()
	invalid := false
	db.Set("not a real name", namedb.Fixture{Valid: &invalid})

	m := mention.FromAggregated("not a real name", ontology.TagPerson, []string{"not a real name"}, nil, "doc-1")
	m.NERTag = ontology.TagPerson

	NewJudithaValidatorStage(db).Process(context.Background(), m, mention.NewContext())

	assert.True(t, m.Rejected)
	assert.Equal(t, "JudithaValidatorStage", m.Stage)
}

func TestJudithaValidatorSkipsNonPerson(t *testing.T) {
	db := namedb.NewFake()
	m := mention.FromAggregated("circular plastics alliance", ontology.TagOrg,
		[]string{"circular plastics alliance"}, nil, "doc-1")

	NewJudithaValidatorStage(db).Process(context.Background(), m, mention.NewContext())

	assert.False(t, m.Rejected)
}

func TestJudithaValidatorDefaultsToValid(t *testing.T) {
	db := namedb.NewFake()
	m := mention.FromAggregated("angela merkel", ontology.TagPerson, []string{"Angela Merkel"}, nil, "doc-1")

	NewJudithaValidatorStage(db).Process(context.Background(), m, mention.NewContext())

	assert.False(t, m.Rejected)
}

package resolve

import (
	"context"
	"testing"

	"github.com/c360studio/entity-analyzer/mention"
	"github.com/c360studio/entity-analyzer/namedb"
	"github.com/c360studio/entity-analyzer/ontology"
	"github.com/stretchr/testify/assert"
)

func TestJudithaLookupResolvesCanonicalValue(t *testing.T) {
	db := namedb.NewFake()
	db.Set("circular plastics alliance", namedb.Fixture{
		EntityID:  "namedb-cpa-1",
		Caption:   "Circular Plastics Alliance",
		Score:     0.95,
		Names:     []string{"CPA"},
		Schemata:  []ontology.Schema{ontology.SchemaLegalEntity},
		Countries: []string{"us"},
	})

	m := mention.FromAggregated("circular plastics alliance", ontology.TagOrg,
		[]string{"circular plastics alliance"}, nil, "doc-1")
	rc := mention.NewContext()
	NewJudithaLookupStage(db, 0.8).Process(context.Background(), m, rc)

	assert.Equal(t, "Circular Plastics Alliance", m.CanonicalValue)
	assert.Contains(t, m.ResolvedValues, "CPA")
	assert.Equal(t, ontology.SchemaLegalEntity, m.ResolvedSchema)
	assert.Equal(t, "namedb-cpa-1", m.ResolvedEntityID)
	assert.Equal(t, []string{"us"}, rc.Countries())
}

func TestJudithaLookupNoMatchLeavesMentionUnresolved(t *testing.T) {
	db := namedb.NewFake()
	m := mention.FromAggregated("nobody", ontology.TagPerson, []string{"nobody"}, nil, "doc-1")
	NewJudithaLookupStage(db, 0.8).Process(context.Background(), m, mention.NewContext())

	assert.Empty(t, m.CanonicalValue)
	assert.False(t, m.Rejected)
}

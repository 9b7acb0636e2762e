package mention

import (
	"testing"

	"github.com/c360studio/entity-analyzer/ontology"
	"github.com/stretchr/testify/assert"
)

func TestFromAggregatedSetsNERTag(t *testing.T) {
	m := FromAggregated("angela merkel", ontology.TagPerson, []string{"Angela Merkel"}, []string{"ner:statistical"}, "test1")
	assert.Equal(t, ontology.TagPerson, m.NERTag)
	assert.False(t, m.Rejected)

	m2 := FromAggregated("ch5604835012345678009", ontology.TagIBAN, []string{"CH5604835012345678009"}, nil, "test")
	assert.Equal(t, ontology.TagOther, m2.NERTag, "non PER/ORG/LOC tags become OTHER")
}

func TestRejectIsIdempotent(t *testing.T) {
	m := FromAggregated("x", ontology.TagPerson, []string{"X"}, nil, "test")
	m.Reject("name validation failed", "JudithaValidatorStage")
	m.Reject("different reason", "GeonamesStage")
	assert.Equal(t, "name validation failed", m.Reason)
	assert.Equal(t, "JudithaValidatorStage", m.Stage)
}

func TestFirstValuePicksLexicographicallySmallest(t *testing.T) {
	m := FromAggregated("k", ontology.TagPerson, []string{"Zebra Corp", "Acme Corp"}, nil, "test")
	assert.Equal(t, "Acme Corp", m.FirstValue())
}

func TestCaptionPrefersCanonicalThenBestName(t *testing.T) {
	m := FromAggregated("k", ontology.TagOrg, []string{"Acme", "Acme Corporation"}, nil, "test")
	assert.Equal(t, "Acme Corporation", m.Caption())

	m.CanonicalValue = "Acme Corp International"
	assert.Equal(t, "Acme Corp International", m.Caption())
}

func TestAllNamesUnionsCaptionValuesAndResolved(t *testing.T) {
	m := FromAggregated("k", ontology.TagPerson, []string{"Jane Doe"}, nil, "test")
	m.ResolvedValues = []string{"Jane Doe", "J. Doe"}
	names := m.AllNames()
	assert.Contains(t, names, "Jane Doe")
	assert.Contains(t, names, "J. Doe")
}

func TestAnnotateValuesPrefersResolved(t *testing.T) {
	m := FromAggregated("k", ontology.TagPerson, []string{"Jane Doe"}, nil, "test")
	assert.Equal(t, []string{"Jane Doe"}, m.AnnotateValues())
	m.ResolvedValues = []string{"Jane Doe", "J. Doe"}
	assert.Equal(t, []string{"Jane Doe", "J. Doe"}, m.AnnotateValues())
}

func TestContextAccumulatesCountriesSorted(t *testing.T) {
	c := NewContext()
	c.AddCountry("ch")
	c.AddCountry("de")
	c.AddCountry("ch")
	assert.Equal(t, []string{"ch", "de"}, c.Countries())
}

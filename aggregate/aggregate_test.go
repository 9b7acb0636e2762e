package aggregate

import (
	"fmt"
	"testing"

	"github.com/c360studio/entity-analyzer/extract"
	"github.com/c360studio/entity-analyzer/ontology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddDedupesByNormalizedKey(t *testing.T) {
	a := New(Config{})
	assert.True(t, a.Add(extract.Result{Value: "Angela Merkel", Tag: ontology.TagPerson, SourceLabel: "ner:a"}))
	assert.True(t, a.Add(extract.Result{Value: "angela   merkel", Tag: ontology.TagPerson, SourceLabel: "ner:b"}))
	require.Equal(t, 1, a.Len())

	results := a.IterResults()
	require.Len(t, results, 1)
	assert.Equal(t, "angela merkel", results[0].Key)
	assert.ElementsMatch(t, []string{"Angela Merkel", "angela   merkel"}, results[0].RawValues)
	assert.ElementsMatch(t, []string{"ner:a", "ner:b"}, results[0].SourceLabels)
}

func TestAddRejectsInvalidValue(t *testing.T) {
	a := New(Config{})
	assert.False(t, a.Add(extract.Result{Value: "not-an-email", Tag: ontology.TagEmail}))
	assert.Equal(t, 0, a.Len())
}

func TestAddTracksMaxConfidence(t *testing.T) {
	a := New(Config{})
	a.Add(extract.Result{Value: "Angela Merkel", Tag: ontology.TagPerson, Confidence: 0.4, HasConf: true})
	a.Add(extract.Result{Value: "Angela Merkel", Tag: ontology.TagPerson, Confidence: 0.9, HasConf: true})
	results := a.IterResults()
	require.Len(t, results, 1)
	assert.Equal(t, 0.9, results[0].MaxConfidence)
}

func TestMaxResultsBound(t *testing.T) {
	a := New(Config{})
	for i := 0; i < MaxResults; i++ {
		ok := a.Add(extract.Result{Value: fmt.Sprintf("person number %05d", i), Tag: ontology.TagPerson})
		require.True(t, ok)
	}
	overflow := a.Add(extract.Result{Value: "one person too many here", Tag: ontology.TagPerson})
	assert.False(t, overflow)
	assert.Equal(t, 1, a.MaxResultsExceeded())
	assert.Equal(t, MaxResults, a.Len())
}

func TestCountryKeyIsValueItself(t *testing.T) {
	a := New(Config{})
	a.Add(extract.Result{Value: "CH", Tag: ontology.TagCountry})
	results := a.IterResults()
	require.Len(t, results, 1)
	assert.Equal(t, "ch", results[0].Key)
}

func TestConfidenceFilteringDropsTrash(t *testing.T) {
	a := New(Config{UseConfidence: true, Threshold: 0.5})
	a.Add(extract.Result{Value: "1234", Tag: ontology.TagPerson})
	assert.Empty(t, a.IterResults())
}

func TestConfidenceFilteringKeepsPlausible(t *testing.T) {
	a := New(Config{UseConfidence: true, Threshold: 0.5})
	a.Add(extract.Result{Value: "Angela Merkel", Tag: ontology.TagPerson})
	results := a.IterResults()
	require.Len(t, results, 1)
}

func TestConfidenceFilteringSkipsNonNER(t *testing.T) {
	a := New(Config{UseConfidence: true, Threshold: 0.99})
	a.Add(extract.Result{Value: "jane@example.com", Tag: ontology.TagEmail})
	assert.Len(t, a.IterResults(), 1, "non-NER aggregates bypass the scorer")
}

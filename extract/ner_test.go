package extract

import (
	"context"
	"testing"

	"github.com/c360studio/entity-analyzer/nermodel"
	"github.com/c360studio/entity-analyzer/ontology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestNameBounds(t *testing.T) {
	assert.True(t, testName("Angela Merkel"))
	assert.False(t, testName("Ed"), "too short")
	assert.False(t, testName("12345678"), "no alphabetic character")
	assert.True(t, testName("Dr. Angela Merkel"), "prefix stripped before measuring")
}

func TestNERExtractorNormalizesAndFilters(t *testing.T) {
	backend := nermodel.NewStatisticalBackend()
	ex := NewNERExtractor(backend)
	results, err := ex.Extract(context.Background(), Context{
		Text: "Das ist der Pudel von Angela Merkel.",
	})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "Angela Merkel", results[0].Value)
	assert.Equal(t, ontology.TagPerson, results[0].Tag)
}

func TestNERExtractorLocationYieldsCountry(t *testing.T) {
	backend := nermodel.NewStatisticalBackend()
	ex := NewNERExtractor(backend)
	results, err := ex.Extract(context.Background(), Context{
		Text: "Jane Doe lives in New York City",
	})
	require.NoError(t, err)

	var loc, country bool
	for _, r := range results {
		if r.Tag == ontology.TagLoc && r.Value == "New York City" {
			loc = true
		}
		if r.Tag == ontology.TagCountry && r.Value == "us" {
			country = true
		}
	}
	assert.True(t, loc)
	assert.True(t, country)
}

func TestNERExtractorPropagatesModelLoadFailure(t *testing.T) {
	ex := NewNERExtractor(nermodel.NewTransformerBackend(nil))
	_, err := ex.Extract(context.Background(), Context{Text: "anything"})
	assert.ErrorIs(t, err, nermodel.ErrModelLoad)
}

package extract

import (
	"context"
	"testing"

	"github.com/c360studio/entity-analyzer/ontology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternExtractorEmail(t *testing.T) {
	e := NewPatternExtractor()
	results, err := e.Extract(context.Background(), Context{Text: "Contact Jane.Doe@Example.com for details."})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "jane.doe@example.com", results[0].Value)
	assert.Equal(t, ontology.TagEmail, results[0].Tag)
}

func TestPatternExtractorPhoneWithCountry(t *testing.T) {
	e := NewPatternExtractor()
	results, err := e.Extract(context.Background(), Context{
		Text: "Mr. Flubby Flubber called the number tel:+919988111222 twice",
	})
	require.NoError(t, err)

	var phone, country bool
	for _, r := range results {
		if r.Tag == ontology.TagPhone && r.Value == "+919988111222" {
			phone = true
		}
		if r.Tag == ontology.TagCountry && r.Value == "in" {
			country = true
		}
	}
	assert.True(t, phone)
	assert.True(t, country)
}

func TestPatternExtractorIBANWithCountry(t *testing.T) {
	e := NewPatternExtractor()
	results, err := e.Extract(context.Background(), Context{
		Text: "wire it to bank account CH5604835012345678009 please",
	})
	require.NoError(t, err)

	var iban, country bool
	for _, r := range results {
		if r.Tag == ontology.TagIBAN && r.Value == "CH5604835012345678009" {
			iban = true
		}
		if r.Tag == ontology.TagCountry && r.Value == "ch" {
			country = true
		}
	}
	assert.True(t, iban)
	assert.True(t, country)
}

func TestPatternExtractorDropsInvalidIBAN(t *testing.T) {
	e := NewPatternExtractor()
	results, err := e.Extract(context.Background(), Context{
		Text: "bad account CH5604835012345678008 here", // wrong checksum
	})
	require.NoError(t, err)
	for _, r := range results {
		assert.NotEqual(t, ontology.TagIBAN, r.Tag)
	}
}

package emit

import (
	"regexp"
	"strings"
	"testing"

	"github.com/c360studio/entity-analyzer/ontology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var annotationPattern = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)

// regexpMustRemoveAnnotations undoes Render's [value](query) substitutions,
// leaving the plain cleaned text behind.
func regexpMustRemoveAnnotations(annotated string) string {
	return annotationPattern.ReplaceAllString(annotated, "$1")
}

func countOccurrences(s, sub string) int {
	return strings.Count(s, sub)
}

func TestAnnotatorSubstitutesRecordedValue(t *testing.T) {
	a := NewAnnotator()
	a.Record("Angela Merkel", []string{"Angela Merkel"}, nil, []string{"namesMentioned"})

	out := a.Render("Das ist der Pudel von Angela Merkel.")
	assert.Contains(t, out, "[Angela Merkel](")
	assert.Contains(t, out, "p_namesMentioned")
}

func TestAnnotatorQueryIncludesSchemaAndFingerprint(t *testing.T) {
	a := NewAnnotator()
	a.Record("Circular Plastics Alliance", []string{"Circular Plastics Alliance"},
		[]ontology.Schema{ontology.SchemaLegalEntity, ontology.SchemaOrganization},
		[]string{"companiesMentioned", "namesMentioned"})

	out := a.Render("We spoke with Circular Plastics Alliance yesterday.")
	assert.Contains(t, out, "s_LegalEntity")
	assert.Contains(t, out, "s_Organization")
	assert.Contains(t, out, "p_companiesMentioned")
	assert.Contains(t, out, "f_circular-plastics-alliance")
}

func TestAnnotatorCleansBracketsBeforeSubstitution(t *testing.T) {
	a := NewAnnotator()
	out := a.Render("Already [bracketed] (text) here")
	assert.NotContains(t, out, "[")
	assert.NotContains(t, out, "(")
}

func TestAnnotatorRoundTripRemovesSubstitutions(t *testing.T) {
	a := NewAnnotator()
	a.Record("New York City", []string{"New York City"}, nil, []string{"locationMentioned"})

	cleaned := cleanForAnnotation("Jane Doe lives in New York City")
	annotated := a.Render("Jane Doe lives in New York City")

	re := regexpMustRemoveAnnotations(annotated)
	require.Equal(t, cleaned, re)
}

func TestAnnotatorDoesNotNestReplacements(t *testing.T) {
	a := NewAnnotator()
	a.Record("New York", []string{"New York"}, nil, []string{"locationMentioned"})
	a.Record("New York City", []string{"New York City"}, nil, []string{"locationMentioned"})

	out := a.Render("I visited New York City last week.")
	// longest match wins at that position; "New York" must not also substitute inside it
	assert.Equal(t, 1, countOccurrences(out, "["))
}

func TestAnnotatorDoesNotMatchInsideLongerWord(t *testing.T) {
	a := NewAnnotator()
	a.Record("US", []string{"US"}, nil, []string{"country"})

	out := a.Render("The bus stopped outside the USA embassy.")
	assert.NotContains(t, out, "[US]")
	assert.Contains(t, out, "bus")
	assert.Contains(t, out, "USA")
}

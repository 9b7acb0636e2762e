package extract

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/c360studio/entity-analyzer/nermodel"
	"github.com/c360studio/entity-analyzer/ontology"
)

// Name acceptance bounds for test_name.
const (
	NameMin = 8
	NameMax = 100
)

// titlePrefixes are honorifics test_name strips before measuring length.
// Shared in spirit with resolve.RigourStage's prefix stripping, but kept
// local here since this filter runs earlier, on raw NER candidates.
var titlePrefixes = []string{
	"Mr.", "Mrs.", "Ms.", "Dr.", "Prof.", "Mr", "Mrs", "Ms", "Dr", "Prof",
	"Herr", "Frau", "Monsieur", "Madame",
}

// stripTitlePrefix removes a leading honorific and any following
// whitespace, once.
func stripTitlePrefix(value string) string {
	trimmed := strings.TrimSpace(value)
	for _, p := range titlePrefixes {
		if strings.HasPrefix(trimmed, p+" ") {
			return strings.TrimSpace(trimmed[len(p):])
		}
	}
	return trimmed
}

// testName implements the test_name acceptance filter: after trimming and
// prefix removal, length must be in [NameMin, NameMax] and the value must
// contain at least one alphabetic character.
func testName(value string) bool {
	stripped := stripTitlePrefix(value)
	if len(stripped) < NameMin || len(stripped) > NameMax {
		return false
	}
	for _, r := range stripped {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// NERExtractor wraps a nermodel.Backend, normalizing its raw labels,
// applying the test_name filter, and producing the LOC→COUNTRY side
// effect.
type NERExtractor struct {
	backend nermodel.Backend
}

// NewNERExtractor wraps a resolved backend as an Extractor.
func NewNERExtractor(backend nermodel.Backend) *NERExtractor {
	return &NERExtractor{backend: backend}
}

func (e *NERExtractor) Name() string { return "ner:" + e.backend.Name() }

func (e *NERExtractor) Extract(ctx context.Context, ec Context) ([]Result, error) {
	cands, err := e.backend.Tag(ctx, ec.Text, ec.Langs)
	if err != nil {
		return nil, fmt.Errorf("ner extractor %s: %w", e.backend.Name(), err)
	}

	var out []Result
	for _, c := range cands {
		tag := normalizeLabel(c.Label)
		if tag == ontology.TagOther {
			continue
		}
		if !testName(c.Value) {
			continue
		}

		result := Result{
			Value:       stripTitlePrefix(c.Value),
			Tag:         tag,
			SourceLabel: e.Name(),
		}
		if c.Confidence > 0 {
			result.Confidence = c.Confidence
			result.HasConf = true
		}
		out = append(out, result)

		if tag != ontology.TagLoc {
			continue
		}
		if code, ok := nermodel.GazetteerCountry(result.Value); ok {
			out = append(out, Result{
				Value:       code,
				Tag:         ontology.TagCountry,
				SourceLabel: e.Name(),
			})
		}
	}
	return out, nil
}

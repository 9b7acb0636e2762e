package nermodel

import (
	"context"
	"regexp"
	"strings"
	"unicode"
)

// capitalizedRun matches 2-5 consecutive capitalized words (space- or
// hyphen-joined), the shape a proper name or place name takes in the
// languages this analyzer targets. Deliberately excludes lowercase
// linking particles ("von", "de", ...): in German text especially, every
// common noun is capitalized too, so a particle bridge would sweep an
// unrelated preceding noun into the match (e.g. "Pudel von Angela
// Merkel" instead of "Angela Merkel").
var capitalizedRun = regexp.MustCompile(
	`\p{Lu}\p{L}*(?:[\s-]\p{Lu}\p{L}*){1,4}`,
)

// orgSuffixes are legal-entity markers that tip a capitalized run toward
// ORG instead of PER. Not exhaustive — covers the jurisdictions this
// analyzer's corpus plausibly mentions.
var orgSuffixes = []string{
	"gmbh", "ag", "sa", "sarl", "s.a.", "ltd", "llc", "inc", "inc.",
	"corp", "corp.", "plc", "oy", "nv", "bv", "kg", "ug",
}

// gazetteerLocations is the built-in place-name table shared with the
// location→country side effect in package extract. Kept here too so the
// default backend can classify a capitalized run as LOC instead of PER —
// a real deployment backs this with an actual gazetteer service instead.
var gazetteerLocations = map[string]string{
	"new york city": "us",
	"new york":      "us",
	"berlin":        "de",
	"paris":         "fr",
	"london":        "gb",
	"zurich":        "ch",
	"geneva":        "ch",
	"madrid":        "es",
	"rome":          "it",
	"lisbon":        "pt",
	"amsterdam":     "nl",
	"brussels":      "be",
	"vienna":        "at",
	"warsaw":        "pl",
}

// statisticalBackend is the default, dependency-free NER variant: a
// lexical heuristic over capitalized word runs. It stands in for a
// per-language statistical model — loading real model files is a
// deployment concern, but the capability still needs one working
// implementation so the pipeline is runnable and testable end to end.
type statisticalBackend struct{}

// NewStatisticalBackend returns the default NER backend.
func NewStatisticalBackend() Backend {
	return statisticalBackend{}
}

func (statisticalBackend) Name() string { return "statistical" }

func (statisticalBackend) Tag(_ context.Context, text string, _ []string) ([]Candidate, error) {
	matches := capitalizedRun.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil, nil
	}

	out := make([]Candidate, 0, len(matches))
	for _, m := range matches {
		out = append(out, Candidate{
			Value:      m,
			Label:      classify(m),
			Confidence: 0.6,
		})
	}
	return out, nil
}

// classify picks PER, ORG, or LOC for a capitalized run using the
// gazetteer and org-suffix tables, defaulting to PER.
func classify(value string) string {
	lower := strings.ToLower(value)
	if _, ok := gazetteerLocations[lower]; ok {
		return "LOC"
	}
	fields := strings.Fields(lower)
	if len(fields) > 0 {
		last := strings.TrimRightFunc(fields[len(fields)-1], func(r rune) bool {
			return !unicode.IsLetter(r) && r != '.'
		})
		for _, suffix := range orgSuffixes {
			if last == suffix {
				return "ORG"
			}
		}
	}
	return "PER"
}

// GazetteerCountry returns the ISO country code for a known place name, or
// "" if unknown. Shared lookup used by package extract's location→country
// side effect.
func GazetteerCountry(name string) (string, bool) {
	code, ok := gazetteerLocations[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}

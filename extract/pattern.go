package extract

import (
	"context"
	"regexp"

	"github.com/c360studio/entity-analyzer/ontology"
)

// Fixed-order pattern regexes: EMAIL, then PHONE, then IBAN.
var (
	emailPattern = regexp.MustCompile(`(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?[\d\-\(\)\/\s]{5,}\d{2}`)
	ibanPattern  = regexp.MustCompile(`(?i)\b[A-Z]{2} ?[0-9]{2} ?[A-Z0-9]{4} ?[0-9]{7} ?([A-Z0-9]?){0,16}\b`)
)

// patternRule pairs a regex with the tag its matches are cleaned as.
var patternRules = []struct {
	tag     ontology.Tag
	pattern *regexp.Regexp
}{
	{ontology.TagEmail, emailPattern},
	{ontology.TagPhone, phonePattern},
	{ontology.TagIBAN, ibanPattern},
}

// PatternExtractor runs the EMAIL, PHONE, and IBAN regexes over a chunk in
// that fixed order. Every match is cleaned through ontology.TypeClean;
// on null cleanup the match is dropped. Matches with a country hint
// (IBAN country code, phone calling-code prefix) additionally yield
// COUNTRY results.
type PatternExtractor struct{}

// NewPatternExtractor returns the pattern extractor.
func NewPatternExtractor() *PatternExtractor { return &PatternExtractor{} }

func (*PatternExtractor) Name() string { return "pattern" }

func (*PatternExtractor) Extract(_ context.Context, ec Context) ([]Result, error) {
	var out []Result
	for _, rule := range patternRules {
		for _, raw := range rule.pattern.FindAllString(ec.Text, -1) {
			cleaned, ok := ontology.TypeClean(rule.tag, raw)
			if !ok {
				continue
			}
			out = append(out, Result{
				Value:       cleaned,
				Tag:         rule.tag,
				SourceLabel: "pattern",
			})
			for _, country := range ontology.CountryHint(rule.tag, cleaned) {
				out = append(out, Result{
					Value:       country,
					Tag:         ontology.TagCountry,
					SourceLabel: "pattern",
				})
			}
		}
	}
	return out, nil
}

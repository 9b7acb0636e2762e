package ontology

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)

// TypeClean applies the scalar-type cleaner for tag to a raw extractor
// value. It returns ok=false when the value doesn't survive cleanup, in
// which case the ExtractionResult or pattern match is dropped.
func TypeClean(tag Tag, raw string) (string, bool) {
	switch tag {
	case TagEmail:
		return cleanEmail(raw)
	case TagPhone:
		return cleanPhone(raw)
	case TagIBAN:
		return cleanIBAN(raw)
	case TagCountry:
		v := strings.ToLower(strings.TrimSpace(raw))
		if len(v) != 2 {
			return "", false
		}
		return v, true
	default: // PER, ORG, LOC: trim only, name-acceptance filtering happens upstream.
		v := strings.TrimSpace(raw)
		if v == "" {
			return "", false
		}
		return v, true
	}
}

func cleanEmail(raw string) (string, bool) {
	v := strings.TrimSpace(raw)
	if !emailPattern.MatchString(v) {
		return "", false
	}
	return strings.ToLower(v), true
}

// CountryHint returns the ISO country codes implied by a cleaned value for
// tags that carry geographic evidence beyond their primary meaning (IBAN
// country prefix, phone calling code) "Pattern Extractor".
func CountryHint(tag Tag, cleaned string) []string {
	switch tag {
	case TagIBAN:
		if c := IBANCountry(cleaned); c != "" {
			return []string{c}
		}
	case TagPhone:
		return PhoneCountryHint(cleaned)
	}
	return nil
}

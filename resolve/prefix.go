package resolve

import (
	"strings"
	"unicode"
)

// personPrefixes are honorifics stripped from candidate person names
// before resolution.
var personPrefixes = []string{
	"Mr.", "Mrs.", "Ms.", "Miss", "Dr.", "Prof.",
	"Herr", "Frau", "Monsieur", "Madame", "Señor", "Señora",
}

// orgPrefixes are leading articles/designators stripped from candidate
// organization names.
var orgPrefixes = []string{"The", "Messrs.", "Firma"}

// genericPrefixes apply when RigourStage can tell neither person nor
// organization.
var genericPrefixes = []string{"The"}

// orgClassSuffixes are legal-entity suffixes recognized as ORG_CLASS
// symbols by the org-name heuristic.
var orgClassSuffixes = []string{
	"Inc", "Inc.", "Corp", "Corp.", "Corporation", "LLC", "L.L.C.",
	"Ltd", "Ltd.", "Limited", "GmbH", "AG", "KG", "SA", "S.A.",
	"Group", "Holdings", "Partners", "LLP", "PLC", "Co", "Co.",
}

// commonGivenNames is the lexicon standing in for the person-name
// tagger's NAME symbols: isPerson requires at least one token to hit it,
// so an arbitrary run of capitalized words ("New York City") doesn't
// read as a personal name. No open corpus of given names was present in
// the example pack, so this stays a built-in table.
var commonGivenNames = setOf(
	"angela", "emmanuel", "jane", "john", "maria", "hans", "pierre",
	"anna", "peter", "wolfgang", "friedrich", "olaf", "ursula",
	"giorgia", "pedro", "joe", "kamala", "xi", "vladimir",
	"christina", "michael", "david", "sarah", "thomas", "martin",
	"laura", "sophie", "marie", "jean", "carlos", "elena",
)

func setOf(words ...string) map[string]bool {
	s := make(map[string]bool, len(words))
	for _, w := range words {
		s[w] = true
	}
	return s
}

func stripPrefixes(value string, prefixes []string) string {
	trimmed := strings.TrimSpace(value)
	for _, p := range prefixes {
		if strings.HasPrefix(trimmed, p+" ") {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, p+" "))
		}
	}
	return trimmed
}

func stripAllPrefixes(values []string, prefixes []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = stripPrefixes(v, prefixes)
	}
	return out
}

// looksLikeNameToken reports whether tok (already punctuation-trimmed)
// carries a NAME symbol: either it's a seeded given name, or it's
// capitalized, alphabetic, and not an org-class suffix.
func looksLikeNameToken(tok string) bool {
	if tok == "" {
		return false
	}
	if commonGivenNames[strings.ToLower(tok)] {
		return true
	}
	for _, suf := range orgClassSuffixes {
		if strings.EqualFold(tok, suf) {
			return false
		}
	}
	r := []rune(tok)
	if !unicode.IsUpper(r[0]) {
		return false
	}
	for _, c := range r {
		if !unicode.IsLetter(c) && c != '-' && c != '\'' {
			return false
		}
	}
	return true
}

func nameTokens(value string) []string {
	return strings.Fields(stripPrefixes(value, genericPrefixes))
}

func cleanToken(tok string) string {
	return strings.TrimFunc(tok, func(r rune) bool { return !unicode.IsLetter(r) })
}

// isPerson implements the RigourStage person heuristic: every name token
// of at least 3 letters must look name-like, and at least one must hit
// the given-name lexicon. The second condition is what keeps capitalized
// place and organization names ("New York City") from classifying as
// people.
func isPerson(name string) bool {
	seeded := false
	any := false
	for _, tok := range nameTokens(name) {
		clean := cleanToken(tok)
		if len([]rune(clean)) < 3 {
			continue
		}
		any = true
		if !looksLikeNameToken(clean) {
			return false
		}
		if commonGivenNames[strings.ToLower(clean)] {
			seeded = true
		}
	}
	return any && seeded
}

// isOrg implements the RigourStage organization heuristic: any token
// matches a known ORG_CLASS suffix.
func isOrg(name string) bool {
	for _, tok := range nameTokens(name) {
		clean := cleanToken(tok)
		for _, suf := range orgClassSuffixes {
			if strings.EqualFold(clean, suf) {
				return true
			}
		}
	}
	return false
}

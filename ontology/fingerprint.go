package ontology

import (
	"strings"
	"unicode"

	"github.com/gosimple/slug"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// diacriticFold decomposes accented runes (NFD), drops combining marks,
// then recomposes (NFC) — locale-insensitive diacritic folding.
var diacriticFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName implements normalize_name: locale-insensitive lowercasing
// plus diacritic folding and whitespace collapsing
func NormalizeName(s string) string {
	folded, _, err := transform.String(diacriticFold, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)
	return strings.Join(strings.Fields(folded), " ")
}

// MakeFingerprints canonicalizes a set of names into the deduplicated
// `f_<fingerprint>` tokens used by the annotator.
func MakeFingerprints(names ...string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		fp := strings.ReplaceAll(NormalizeName(n), " ", "-")
		if fp == "" || seen[fp] {
			continue
		}
		seen[fp] = true
		out = append(out, fp)
	}
	return out
}

// Slug produces a deterministic, URL-safe identifier fragment, used for
// BankAccount entity ids.
func Slug(s string) string {
	return slug.Make(s)
}

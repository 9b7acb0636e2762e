package extract

import (
	"strings"

	"github.com/c360studio/entity-analyzer/ontology"
)

// labelSynonyms maps every raw NER label variant this analyzer's backends
// plausibly emit to its canonical tag. B-/I- BIO prefixes are stripped
// before lookup (see normalizeLabel). Anything not in this table becomes
// ontology.TagOther and is dropped, keeping the tag set closed.
var labelSynonyms = map[string]ontology.Tag{
	"per":          ontology.TagPerson,
	"person":       ontology.TagPerson,
	"psn":          ontology.TagPerson,
	"org":          ontology.TagOrg,
	"organization": ontology.TagOrg,
	"organisation": ontology.TagOrg,
	"loc":          ontology.TagLoc,
	"location":     ontology.TagLoc,
	"gpe":          ontology.TagLoc,
}

// normalizeLabel strips a BIO prefix ("B-", "I-") and maps the remainder
// through labelSynonyms. Unknown labels return ontology.TagOther.
func normalizeLabel(raw string) ontology.Tag {
	l := strings.ToLower(strings.TrimSpace(raw))
	if len(l) > 2 && (strings.HasPrefix(l, "b-") || strings.HasPrefix(l, "i-")) {
		l = l[2:]
	}
	if tag, ok := labelSynonyms[l]; ok {
		return tag
	}
	return ontology.TagOther
}

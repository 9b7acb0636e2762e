// Package emit implements the Entity Factory and Annotator: turning
// surviving mentions into ontology entities, and extracted values into
// search-indexable annotated text.
package emit

import (
	"strings"

	"github.com/c360studio/entity-analyzer/ontology"
)

// Prefix tables mirror resolve's RigourStage tables: both approximate
// the same prefix-stripping rule, applied at different points in the
// pipeline (candidate classification vs. final emission), so they're
// kept as separate, independently adjustable copies rather than a
// shared package.
var (
	personPrefixes  = []string{"Mr.", "Mrs.", "Ms.", "Miss", "Dr.", "Prof.", "Herr", "Frau", "Monsieur", "Madame", "Señor", "Señora"}
	orgPrefixes     = []string{"The", "Messrs.", "Firma"}
	genericPrefixes = []string{"The"}
)

func stripPrefixes(value string, prefixes []string) string {
	trimmed := strings.TrimSpace(value)
	for _, p := range prefixes {
		if strings.HasPrefix(trimmed, p+" ") {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, p+" "))
		}
	}
	return trimmed
}

// CleanNameForTag implements clean_name_for_tag: normalize_name followed
// by tag-appropriate prefix stripping.
func CleanNameForTag(tag ontology.Tag, name string) string {
	normalized := ontology.NormalizeName(name)
	switch tag {
	case ontology.TagPerson:
		return stripPrefixes(normalized, lower(personPrefixes))
	case ontology.TagOrg:
		return stripPrefixes(normalized, lower(orgPrefixes))
	default:
		return stripPrefixes(normalized, lower(genericPrefixes))
	}
}

// CleanNamesForTag applies CleanNameForTag to every value, preserving
// order and dropping empties.
func CleanNamesForTag(tag ontology.Tag, names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if clean := CleanNameForTag(tag, n); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}

// lower normalizes a prefix table to match already-normalized
// (lowercased) names, since CleanNameForTag strips prefixes after
// normalize_name has already lowercased the value.
func lower(prefixes []string) []string {
	out := make([]string, len(prefixes))
	for i, p := range prefixes {
		out[i] = strings.ToLower(p)
	}
	return out
}

package emit

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/c360studio/entity-analyzer/ontology"
)

// Annotation is one recorded extracted value awaiting substitution into
// the indexed text.
type Annotation struct {
	Value      string
	Names      []string
	Schemata   []ontology.Schema
	Properties []string
}

// Annotator accumulates Annotations across one source entity's mentions
// and renders them into the final annotated indexText.
type Annotator struct {
	byValue map[string]*Annotation
}

// NewAnnotator returns an empty Annotator.
func NewAnnotator() *Annotator {
	return &Annotator{byValue: make(map[string]*Annotation)}
}

// Record adds (or merges into an existing) Annotation for value.
func (a *Annotator) Record(value string, names []string, schemata []ontology.Schema, properties []string) {
	if value == "" {
		return
	}
	ann, ok := a.byValue[value]
	if !ok {
		ann = &Annotation{Value: value}
		a.byValue[value] = ann
	}
	ann.Names = mergeUniqueStrings(ann.Names, names)
	ann.Schemata = mergeUniqueSchemata(ann.Schemata, schemata)
	ann.Properties = mergeUniqueStrings(ann.Properties, properties)
}

var cleanupChars = strings.NewReplacer("(", " ", ")", " ", "[", " ", "]", " ")
var whitespaceRun = regexp.MustCompile(`\s+`)

func cleanForAnnotation(text string) string {
	cleaned := cleanupChars.Replace(text)
	cleaned = whitespaceRun.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// Render cleans text (replacing "()[]" and collapsing whitespace),
// then substitutes every recorded value's occurrence with
// `[<value>](<query>)`. A single left-to-right pass over the cleaned text
// means replacements never nest.
func (a *Annotator) Render(text string) string {
	cleaned := cleanForAnnotation(text)
	if len(a.byValue) == 0 {
		return cleaned
	}

	values := make([]string, 0, len(a.byValue))
	for v := range a.byValue {
		values = append(values, v)
	}
	// Longest values first so the alternation prefers the more specific
	// match when one value is a substring of another.
	sort.Slice(values, func(i, j int) bool { return len(values[i]) > len(values[j]) })

	patterns := make([]string, len(values))
	for i, v := range values {
		patterns[i] = boundedPattern(v)
	}
	re := regexp.MustCompile(strings.Join(patterns, "|"))

	matches := re.FindAllStringIndex(cleaned, -1)
	if matches == nil {
		return cleaned
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if start < last {
			continue
		}
		matched := cleaned[start:end]
		ann, ok := a.byValue[matched]
		if !ok {
			continue
		}
		b.WriteString(cleaned[last:start])
		b.WriteString("[")
		b.WriteString(matched)
		b.WriteString("](")
		b.WriteString(buildQuery(ann))
		b.WriteString(")")
		last = end
	}
	b.WriteString(cleaned[last:])
	return b.String()
}

// boundedPattern quotes v and anchors it with \b on each end that starts
// or ends with a word character. A value like "+919988111222" gets no
// leading \b: there is no word boundary between "tel:" and "+", and
// requiring one would make phone values unmatchable.
func boundedPattern(v string) string {
	p := regexp.QuoteMeta(v)
	runes := []rune(v)
	if isWordRune(runes[0]) {
		p = `\b` + p
	}
	if isWordRune(runes[len(runes)-1]) {
		p += `\b`
	}
	return p
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// buildQuery builds the ampersand-joined, alphabetically sorted token set
// for one Annotation: f_<fingerprint>, p_<property>, s_<schema>,
// q_<symbol-id>.
func buildQuery(ann *Annotation) string {
	tokenSet := make(map[string]bool)
	for _, fp := range ontology.MakeFingerprints(ann.Names...) {
		tokenSet["f_"+fp] = true
	}
	for _, p := range ann.Properties {
		tokenSet["p_"+p] = true
	}
	for _, s := range ann.Schemata {
		tokenSet["s_"+string(s)] = true
	}
	for _, sym := range nameSymbolIDs(ann.Names) {
		tokenSet["q_"+sym] = true
	}

	tokens := make([]string, 0, len(tokenSet))
	for t := range tokenSet {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)
	return strings.Join(tokens, "&")
}

// nameSymbolIDs approximates "the union of person-name and org-name
// symbol ids" as the set of name tokens that still have at least three
// characters once leading and trailing non-letters are trimmed (case is
// not checked) — there is no concrete symbol tagger to draw ids from, so
// each qualifying token becomes its own lowercased symbol id.
func nameSymbolIDs(names []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range names {
		for _, tok := range strings.Fields(name) {
			clean := strings.TrimFunc(tok, func(r rune) bool { return !unicode.IsLetter(r) })
			if len([]rune(clean)) < 3 {
				continue
			}
			id := strings.ToLower(clean)
			if seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func mergeUniqueStrings(base, extra []string) []string {
	seen := make(map[string]bool, len(base))
	out := append([]string(nil), base...)
	for _, v := range base {
		seen[v] = true
	}
	for _, v := range extra {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func mergeUniqueSchemata(base, extra []ontology.Schema) []ontology.Schema {
	seen := make(map[ontology.Schema]bool, len(base))
	out := append([]ontology.Schema(nil), base...)
	for _, v := range base {
		seen[v] = true
	}
	for _, v := range extra {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

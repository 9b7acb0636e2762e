package chunk

import (
	"sort"
	"strings"
	"unicode"
)

// LanguageGuess is one ranked language detection result. Code is an ISO
// 639-3 tag.
type LanguageGuess struct {
	Code       string
	Confidence float64
}

// LanguageDetector produces ranked language guesses for a text, most
// confident first. Like a nermodel.Backend, it's a pluggable capability:
// the default implementation below is intentionally small, and a real
// deployment can swap in a statistical classifier behind the same
// interface.
type LanguageDetector interface {
	Detect(text string, max int) []LanguageGuess
}

// minLanguageConfidence is the floor below which a guess is dropped: a
// language's share of all stopword hits must reach it. A text in which no
// language reaches it yields no guesses rather than a low-confidence guess
// the caller would need to filter itself.
const minLanguageConfidence = 0.35

// stopwordDetector identifies language by function-word frequency: a
// standard lightweight technique, distinct from n-gram statistical models
// that need training data. The example corpus ships no language-ID
// library (see DESIGN.md), so this stays a small built-in table covering
// the languages a document plausibly mixes.
type stopwordDetector struct {
	stopwords map[string]map[string]bool
}

// NewStopwordDetector returns the default LanguageDetector.
func NewStopwordDetector() LanguageDetector {
	return &stopwordDetector{stopwords: defaultStopwords}
}

func (d *stopwordDetector) Detect(text string, max int) []LanguageGuess {
	words := tokenizeWords(text)
	if len(words) == 0 {
		return nil
	}

	scores := make(map[string]int, len(d.stopwords))
	for _, w := range words {
		lw := strings.ToLower(w)
		for lang, set := range d.stopwords {
			if set[lw] {
				scores[lang]++
			}
		}
	}

	total := 0
	for _, s := range scores {
		total += s
	}
	if total == 0 {
		return nil
	}

	guesses := make([]LanguageGuess, 0, len(scores))
	for lang, s := range scores {
		conf := float64(s) / float64(total)
		if conf < minLanguageConfidence {
			continue
		}
		guesses = append(guesses, LanguageGuess{Code: lang, Confidence: conf})
	}
	sort.Slice(guesses, func(i, j int) bool {
		if guesses[i].Confidence != guesses[j].Confidence {
			return guesses[i].Confidence > guesses[j].Confidence
		}
		return guesses[i].Code < guesses[j].Code
	})
	if max > 0 && len(guesses) > max {
		guesses = guesses[:max]
	}
	return guesses
}

func tokenizeWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func setOf(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// defaultStopwords covers the languages this analyzer's default NER
// backends and example corpus target. ISO 639-3 keys.
var defaultStopwords = map[string]map[string]bool{
	"deu": setOf("der", "die", "das", "und", "ist", "von", "den", "ein", "eine",
		"mit", "für", "auf", "nicht", "ich", "du", "er", "sie", "es", "wir", "war"),
	"fra": setOf("le", "la", "les", "et", "est", "de", "un", "une", "des",
		"pour", "avec", "ce", "qui", "que", "dans", "sur", "son", "il", "elle"),
	"eng": setOf("the", "and", "is", "of", "a", "an", "to", "in", "that", "it",
		"for", "on", "with", "as", "was", "are", "he", "she", "his", "her"),
	"spa": setOf("el", "la", "los", "las", "y", "es", "de", "un", "una",
		"para", "con", "que", "en", "su", "por"),
	"ita": setOf("il", "lo", "gli", "le", "e", "è", "di", "un", "una",
		"per", "con", "che", "in", "suo", "sua"),
	"por": setOf("o", "a", "os", "as", "e", "é", "de", "um", "uma",
		"para", "com", "que", "em", "seu", "sua"),
	"nld": setOf("de", "het", "een", "en", "is", "van", "dat", "met",
		"voor", "niet", "op", "zijn", "haar"),
}

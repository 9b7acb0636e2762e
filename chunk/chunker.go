// Package chunk splits document text into analyzer-sized slices.
package chunk

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Config holds chunking configuration. Slices are bounded by character
// count: the analyzer feeds raw text straight to extractor backends, so
// there's no tokenizer budget to approximate.
type Config struct {
	// MaxChars is the hard ceiling on a single slice's length.
	MaxChars int

	// MinChars is the floor below which a slice gets merged into the slice
	// after it, when the two together fit within MaxChars. The last slice
	// has no successor and is emitted as is, however short.
	MinChars int
}

// DefaultConfig returns sensible chunking defaults: a few thousand
// characters per slice, enough context for cross-sentence NER without
// handing an extractor backend an entire document at once.
func DefaultConfig() Config {
	return Config{
		MaxChars: 4000,
		MinChars: 400,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.MinChars <= 0 {
		return fmt.Errorf("MinChars must be positive, got %d", c.MinChars)
	}
	if c.MaxChars <= 0 {
		return fmt.Errorf("MaxChars must be positive, got %d", c.MaxChars)
	}
	if c.MinChars >= c.MaxChars {
		return fmt.Errorf("MinChars (%d) must be less than MaxChars (%d)", c.MinChars, c.MaxChars)
	}
	return nil
}

// Slice is a contiguous, byte-for-byte substring of the source text. Start
// and End are byte offsets into the original string; downstream
// offset-based annotation depends on slices never paraphrasing or
// re-flowing the text they carry.
type Slice struct {
	Text  string
	Start int
	End   int
}

// Chunker splits document text into slices for extraction.
type Chunker struct {
	cfg Config
}

// New creates a new Chunker with the given configuration. Returns an error
// if the configuration is invalid.
func New(cfg Config) (*Chunker, error) {
	if cfg.MaxChars == 0 {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Chunker{cfg: cfg}, nil
}

// MustNew creates a new Chunker, panicking on invalid config.
func MustNew(cfg Config) *Chunker {
	c, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return c
}

// NewDefault creates a Chunker with default configuration.
func NewDefault() *Chunker {
	return MustNew(DefaultConfig())
}

// span is a byte range [start, end) into a string, used internally before
// a range is promoted to an emitted Slice.
type span struct {
	start, end int
}

// Chunk splits text into slices, none of which exceed MaxChars. It packs
// paragraphs together up to the budget, falls back to sentence-level
// splitting for a paragraph that alone exceeds it, and falls back further
// to a hard character split for a sentence that still doesn't fit. A slice
// shorter than MinChars is merged into the slice after it when the result
// still fits; the last slice is never merged.
func (c *Chunker) Chunk(text string) []Slice {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var units []span
	for _, p := range paragraphSpans(text) {
		if p.end-p.start > c.cfg.MaxChars {
			for _, s := range sentenceSpans(text[p.start:p.end]) {
				units = append(units, span{p.start + s.start, p.start + s.end})
			}
			continue
		}
		units = append(units, p)
	}

	slices := pack(text, units, c.cfg.MaxChars)
	return mergeSmall(text, slices, c.cfg.MinChars, c.cfg.MaxChars)
}

// pack greedily groups units into slices no longer than maxChars, hard
// splitting any single unit that alone exceeds the budget.
func pack(text string, units []span, maxChars int) []Slice {
	var out []Slice
	chunkStart, chunkEnd := -1, -1

	flush := func() {
		if chunkStart >= 0 {
			out = append(out, Slice{Text: text[chunkStart:chunkEnd], Start: chunkStart, End: chunkEnd})
			chunkStart, chunkEnd = -1, -1
		}
	}

	for _, u := range units {
		if u.end-u.start > maxChars {
			flush()
			out = append(out, hardSplit(text, u.start, u.end, maxChars)...)
			continue
		}
		if chunkStart >= 0 && u.end-chunkStart > maxChars {
			flush()
		}
		if chunkStart < 0 {
			chunkStart = u.start
		}
		chunkEnd = u.end
	}
	flush()
	return out
}

// mergeSmall combines a slice below minChars with its successor, provided
// the combination still fits within maxChars.
func mergeSmall(text string, slices []Slice, minChars, maxChars int) []Slice {
	if len(slices) <= 1 {
		return slices
	}
	merged := make([]Slice, len(slices))
	copy(merged, slices)

	var out []Slice
	for i := 0; i < len(merged); i++ {
		cur := merged[i]
		if len(cur.Text) < minChars && i < len(merged)-1 {
			next := merged[i+1]
			if next.End-cur.Start <= maxChars {
				merged[i+1] = Slice{Text: text[cur.Start:next.End], Start: cur.Start, End: next.End}
				continue
			}
		}
		out = append(out, cur)
	}
	return out
}

// hardSplit cuts [start, end) of text into slices of at most maxChars,
// never inside a rune. Last resort when no paragraph or sentence boundary
// brings a unit under budget.
func hardSplit(text string, start, end, maxChars int) []Slice {
	var out []Slice
	i := start
	for i < end {
		j := i + maxChars
		if j > end {
			j = end
		}
		for j < end && !utf8.RuneStart(text[j]) {
			j++
		}
		if j <= i {
			j = end
		}
		out = append(out, Slice{Text: text[i:j], Start: i, End: j})
		i = j
	}
	return out
}

// paragraphSpans groups consecutive non-blank lines into paragraph
// spans, dropping the blank-line separators between them. No markdown
// heading tracking: this analyzer chunks arbitrary document text.
func paragraphSpans(text string) []span {
	var out []span
	groupStart, groupEnd := -1, -1

	flush := func() {
		if groupStart >= 0 {
			out = append(out, span{groupStart, groupEnd})
			groupStart, groupEnd = -1, -1
		}
	}

	lineStart := 0
	for i := 0; i <= len(text); i++ {
		if i < len(text) && text[i] != '\n' {
			continue
		}
		lineEnd := i
		if strings.TrimSpace(text[lineStart:lineEnd]) == "" {
			flush()
		} else {
			if groupStart < 0 {
				groupStart = lineStart
			}
			groupEnd = lineEnd
		}
		lineStart = i + 1
	}
	flush()
	return out
}

// sentenceSpans splits s into sentence-ending spans: punctuation (./?/!)
// followed by whitespace or end of string. Returns byte offsets rather
// than rebuilt substrings so slices stay exact.
func sentenceSpans(s string) []span {
	type runePos struct {
		idx int
		r   rune
	}
	var rps []runePos
	for i, r := range s {
		rps = append(rps, runePos{i, r})
	}
	n := len(rps)
	if n == 0 {
		return nil
	}

	var spans []span
	start := 0
	for i := 0; i < n; i++ {
		r := rps[i].r
		if r != '.' && r != '?' && r != '!' {
			continue
		}
		var next rune
		if i+1 < n {
			next = rps[i+1].r
		}
		if i != n-1 && next != ' ' && next != '\n' {
			continue
		}
		end := len(s)
		if i+1 < n {
			end = rps[i+1].idx
		}
		spans = append(spans, span{start, end})
		start = end
	}
	if start < len(s) {
		spans = append(spans, span{start, len(s)})
	}
	return spans
}

package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkPreservesExactSubstrings(t *testing.T) {
	text := "Para one, sentence one. Sentence two.\n\nPara two starts here."
	c := NewDefault()
	slices := c.Chunk(text)
	require.NotEmpty(t, slices)
	for _, s := range slices {
		assert.Equal(t, text[s.Start:s.End], s.Text)
	}
}

func TestChunkRespectsMaxChars(t *testing.T) {
	cfg := Config{MaxChars: 40, MinChars: 5}
	c := MustNew(cfg)
	text := strings.Repeat("This is a sentence that runs on. ", 10)
	for _, s := range c.Chunk(text) {
		assert.LessOrEqual(t, len(s.Text), cfg.MaxChars)
	}
}

func TestChunkHardSplitsOversizedSentence(t *testing.T) {
	cfg := Config{MaxChars: 10, MinChars: 2}
	c := MustNew(cfg)
	text := strings.Repeat("a", 35)
	slices := c.Chunk(text)
	require.NotEmpty(t, slices)
	var rebuilt strings.Builder
	for _, s := range slices {
		assert.LessOrEqual(t, len(s.Text), cfg.MaxChars)
		rebuilt.WriteString(s.Text)
	}
	assert.Equal(t, text, rebuilt.String())
}

func TestChunkEmptyText(t *testing.T) {
	c := NewDefault()
	assert.Nil(t, c.Chunk(""))
	assert.Nil(t, c.Chunk("   \n\n  "))
}

func TestConfigValidate(t *testing.T) {
	_, err := New(Config{MaxChars: 10, MinChars: 10})
	assert.Error(t, err)

	_, err = New(Config{MaxChars: 0, MinChars: -1})
	assert.NoError(t, err, "zero MaxChars falls back to defaults")
}

package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopwordDetectorGerman(t *testing.T) {
	d := NewStopwordDetector()
	text := strings.Repeat("Das ist der Pudel von Angela Merkel. ", 5)
	guesses := d.Detect(text, 3)
	require.NotEmpty(t, guesses)
	assert.Equal(t, "deu", guesses[0].Code)
}

func TestStopwordDetectorFrench(t *testing.T) {
	d := NewStopwordDetector()
	text := strings.Repeat("C'est le caniche d'Emmanuel Macron qui est dans le jardin. ", 5)
	guesses := d.Detect(text, 3)
	require.NotEmpty(t, guesses)
	assert.Equal(t, "fra", guesses[0].Code)
}

func TestStopwordDetectorNoSignal(t *testing.T) {
	d := NewStopwordDetector()
	assert.Nil(t, d.Detect("", 3))
	assert.Nil(t, d.Detect("1234567890 !@#$%^&*()", 3))
}

func TestStopwordDetectorMaxLimit(t *testing.T) {
	d := NewStopwordDetector()
	text := strings.Repeat("the a is of and the a is of and ", 5)
	guesses := d.Detect(text, 1)
	assert.LessOrEqual(t, len(guesses), 1)
}

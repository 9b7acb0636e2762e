package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJaroSimilarityIdentical(t *testing.T) {
	assert.Equal(t, 1.0, JaroSimilarity("munich", "munich"))
}

func TestJaroSimilarityEmpty(t *testing.T) {
	assert.Equal(t, 1.0, JaroSimilarity("", ""))
	assert.Equal(t, 0.0, JaroSimilarity("munich", ""))
}

func TestJaroSimilarityCloseMatch(t *testing.T) {
	// classic MARTHA/MARHTA textbook example, similarity 0.944
	sim := JaroSimilarity("martha", "marhta")
	assert.InDelta(t, 0.944, sim, 0.001)
}

func TestJaroSimilarityUnrelatedStaysBelowGeonamesThreshold(t *testing.T) {
	sim := JaroSimilarity("munich", "nairobi")
	assert.Less(t, sim, geonamesSimilarityThreshold)
}

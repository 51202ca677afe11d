package rag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func resultsWithSimilarity(similarities ...float64) []RankedResult {
	results := make([]RankedResult, len(similarities))
	for i, s := range similarities {
		results[i] = RankedResult{Similarity: s, ContentText: "doc"}
	}
	return results
}

func TestScoreEmptyResults(t *testing.T) {
	w := DefaultConfidenceWeights()

	assert.Equal(t, 0.1, w.Score(nil, "a perfectly fine answer"))
	assert.Equal(t, 0.1, w.Score([]RankedResult{}, ""))
}

func TestScoreReferenceInputs(t *testing.T) {
	w := DefaultConfidenceWeights()

	// avgSimilarity=0.9, count=5, answer length=500
	results := resultsWithSimilarity(0.9, 0.9, 0.9, 0.9, 0.9)
	answer := strings.Repeat("a", 500)

	assert.InDelta(t, 0.94, w.Score(results, answer), 1e-9)
}

func TestScoreSaturation(t *testing.T) {
	w := DefaultConfidenceWeights()

	// Ten results and a very long answer saturate both auxiliary terms.
	results := resultsWithSimilarity(0.8, 0.8, 0.8, 0.8, 0.8, 0.8, 0.8, 0.8, 0.8, 0.8)
	long := strings.Repeat("a", 5000)
	short := strings.Repeat("a", 250)

	saturated := w.Score(results, long)
	assert.InDelta(t, 0.6*0.8+0.2+0.2, saturated, 1e-9)

	// A shorter answer only reduces the length term.
	assert.InDelta(t, 0.6*0.8+0.2+0.2*0.5, w.Score(results, short), 1e-9)
}

func TestScoreClampedToOne(t *testing.T) {
	w := DefaultConfidenceWeights()

	// Similarities above 1 cannot push the score past the cap.
	results := resultsWithSimilarity(2.0, 2.0, 2.0, 2.0, 2.0)
	assert.Equal(t, 1.0, w.Score(results, strings.Repeat("a", 1000)))
}

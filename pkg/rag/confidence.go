package rag

// ConfidenceWeights parameterizes the confidence estimate. The defaults come
// from heuristic tuning; they are configuration, not law, but any weighting
// must combine the same three signals: mean retrieval similarity, retrieval
// count saturation, and answer-length saturation.
type ConfidenceWeights struct {
	Similarity float64 // weight of mean similarity
	Count      float64 // weight of result-count saturation
	Length     float64 // weight of answer-length saturation

	CountSaturation  float64 // result count at which the count term maxes out
	LengthSaturation float64 // answer length (chars) at which the length term maxes out

	// EmptyScore is returned when nothing was retrieved: the answer came
	// from general knowledge and cannot be verified against sources.
	EmptyScore float64
}

func DefaultConfidenceWeights() ConfidenceWeights {
	return ConfidenceWeights{
		Similarity:       0.6,
		Count:            0.2,
		Length:           0.2,
		CountSaturation:  5,
		LengthSaturation: 500,
		EmptyScore:       0.1,
	}
}

// Score derives a single confidence estimate in [0, 1] from retrieval quality
// and answer characteristics.
func (w ConfidenceWeights) Score(results []RankedResult, answer string) float64 {
	if len(results) == 0 {
		return w.EmptyScore
	}

	var sum float64
	for _, r := range results {
		sum += r.Similarity
	}
	avgSimilarity := sum / float64(len(results))

	countScore := float64(len(results)) / w.CountSaturation
	if countScore > 1 {
		countScore = 1
	}

	lengthScore := float64(len(answer)) / w.LengthSaturation
	if lengthScore > 1 {
		lengthScore = 1
	}

	score := w.Similarity*avgSimilarity + w.Count*countScore + w.Length*lengthScore
	if score > 1 {
		score = 1
	}
	return score
}

package ranker

import "math"

// Vector is a dense term-frequency vector.
type Vector []float64

// Norm returns the Euclidean magnitude of v.
func (v Vector) Norm() float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// CosineSimilarity returns the cosine of the angle between a and b. Vectors of
// different lengths, empty vectors and zero-magnitude vectors all score 0
// rather than failing.
func CosineSimilarity(a, b Vector) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return clamp(dot/(math.Sqrt(normA)*math.Sqrt(normB)), -1, 1)
}

// score folds a cosine into [0, 1]. Term-frequency vectors are never negative,
// so this only trims rounding error above 1.
func score(cos float64) float64 {
	return clamp(cos, 0, 1)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

package knowledge

import (
	"fmt"
	"math"
)

// Cosine computes the cosine similarity between two vectors: the dot product
// divided by the product of magnitudes. The result is in [-1, 1].
//
// Returns ErrDimensionMismatch when the vectors have different lengths. This
// should never happen for documents embedded with the same model as the
// query; it indicates a stale or corrupt index rather than a bad query.
//
// A zero vector has no direction; similarity against it is defined as 0.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// Package facematch implements the similarity search used to identify a
// person from a facial embedding: cosine similarity, a single-pass
// best/second-best fold over the enrolled candidates, and the acceptance
// policy that rejects low-confidence and ambiguous matches.
package facematch

import "math"

// Cosine returns the cosine similarity of a and b: the dot product divided
// by the product of the L2 norms. When the vectors differ in length only
// the common prefix is compared. Returns 0 when either vector has zero
// norm. The result is clamped to [-1, 1] against floating point drift.
func Cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim > 1 {
		sim = 1
	}
	if sim < -1 {
		sim = -1
	}
	return sim
}

package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strings"
)

// EmbeddingVector is a fixed-length numeric representation of a passage's
// semantic content under a named model. Each passage has at most one
// vector per model.
type EmbeddingVector struct {
	// PassageID is the owning passage.
	PassageID string

	// Model names the embedding model that produced the vector.
	Model string

	// Dims is the vector dimensionality.
	Dims int

	// Vector holds the components, len(Vector) == Dims.
	Vector []float64

	// ContentHash is ContentHash(Model, source text) at indexing time,
	// used to detect stale cached computations.
	ContentHash string
}

// SemanticMatch is one ranked nearest-neighbour result.
type SemanticMatch struct {
	// Reference is the human-readable passage reference.
	Reference string

	// Snippet is a short excerpt of the matched passage.
	Snippet string

	// Href is the site path of the matched passage.
	Href string

	// Score is the cosine similarity, nominally in [-1,1].
	Score float64
}

// CosineSimilarity returns dot(a,b) / (|a|*|b|). Vectors of unequal length
// fail fast with ErrVectorLengthMismatch: that is a programmer error, not a
// data condition. Zero-magnitude input yields 0.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrVectorLengthMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// ContentHash digests a model identifier plus normalized source text.
// Normalization lowercases the text and collapses whitespace runs so that
// formatting-only edits do not invalidate cached similarity results.
func ContentHash(model, text string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	sum := sha256.Sum256([]byte(model + "\n" + normalized))
	return hex.EncodeToString(sum[:])
}

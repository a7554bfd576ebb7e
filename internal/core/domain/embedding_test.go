package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity_SelfIsOne(t *testing.T) {
	v := []float64{0.3, -1.2, 4.5, 0.01}
	score, err := CosineSimilarity(v, v)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestCosineSimilarity_Orthogonal(t *testing.T) {
	score, err := CosineSimilarity([]float64{1, 0}, []float64{0, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, score, 1e-9)
}

func TestCosineSimilarity_Opposite(t *testing.T) {
	score, err := CosineSimilarity([]float64{1, 2}, []float64{-1, -2})
	require.NoError(t, err)
	assert.InDelta(t, -1.0, score, 1e-9)
}

func TestCosineSimilarity_ZeroMagnitude(t *testing.T) {
	score, err := CosineSimilarity([]float64{0, 0}, []float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestCosineSimilarity_LengthMismatch(t *testing.T) {
	_, err := CosineSimilarity([]float64{1, 2}, []float64{1, 2, 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVectorLengthMismatch)
}

func TestContentHash(t *testing.T) {
	h1 := ContentHash("embed-small", "The LORD is my shepherd")
	h2 := ContentHash("embed-small", "the   lord is my\n shepherd ")
	h3 := ContentHash("embed-large", "The LORD is my shepherd")
	h4 := ContentHash("embed-small", "I shall not want")

	// Whitespace and casing do not change the hash.
	assert.Equal(t, h1, h2)

	// Model and text both participate.
	assert.NotEqual(t, h1, h3)
	assert.NotEqual(t, h1, h4)

	assert.Len(t, h1, 64)
}

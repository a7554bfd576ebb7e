package memory

import (
	"context"
	"sync"

	"github.com/versewell/lumen/internal/core/domain"
	"github.com/versewell/lumen/internal/core/ports/driven"
)

// Ensure EmbeddingStore implements the interface.
var _ driven.EmbeddingStore = (*EmbeddingStore)(nil)

// EmbeddingStore is an in-memory implementation of driven.EmbeddingStore.
// Insertion order stands in for indexing time: the last saved vector is
// the most recently indexed.
type EmbeddingStore struct {
	mu      sync.RWMutex
	vectors []domain.EmbeddingVector
	byKey   map[string]int
}

// NewEmbeddingStore creates a new in-memory embedding store.
func NewEmbeddingStore() *EmbeddingStore {
	return &EmbeddingStore{byKey: make(map[string]int)}
}

// SaveEmbedding stores a vector. Re-saving an existing (passage, model)
// pair moves it to the most-recent position.
func (s *EmbeddingStore) SaveEmbedding(_ context.Context, v domain.EmbeddingVector) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := embeddingKey(v.PassageID, v.Model)
	if i, ok := s.byKey[key]; ok {
		s.vectors = append(s.vectors[:i], s.vectors[i+1:]...)
		for k, j := range s.byKey {
			if j > i {
				s.byKey[k] = j - 1
			}
		}
	}
	s.byKey[key] = len(s.vectors)
	s.vectors = append(s.vectors, v)
	return nil
}

// GetEmbedding returns the vector for a passage under a model.
func (s *EmbeddingStore) GetEmbedding(_ context.Context, passageID, model string) (*domain.EmbeddingVector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byKey[embeddingKey(passageID, model)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	v := s.vectors[i]
	return &v, nil
}

// ListRecent returns up to limit vectors for a model, most recent first,
// excluding excludeID.
func (s *EmbeddingStore) ListRecent(_ context.Context, model string, limit int, excludeID string) ([]domain.EmbeddingVector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.EmbeddingVector
	for i := len(s.vectors) - 1; i >= 0; i-- {
		v := s.vectors[i]
		if v.Model != model || v.PassageID == excludeID {
			continue
		}
		out = append(out, v)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func embeddingKey(passageID, model string) string {
	return passageID + "\x00" + model
}

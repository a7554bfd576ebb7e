package memory

import (
	"context"
	"sync"

	"github.com/versewell/lumen/internal/core/domain"
	"github.com/versewell/lumen/internal/core/ports/driven"
)

// Ensure PassageStore implements the interface.
var _ driven.PassageStore = (*PassageStore)(nil)

// PassageStore is an in-memory implementation of driven.PassageStore.
// Relational mentions are resolved through the catalog store's
// passage-reference join.
type PassageStore struct {
	mu       sync.RWMutex
	passages map[string]domain.Passage
	catalog  *CatalogStore
}

// NewPassageStore creates a new in-memory passage store. catalog may be
// nil when mention resolution is not needed.
func NewPassageStore(catalog *CatalogStore) *PassageStore {
	return &PassageStore{
		passages: make(map[string]domain.Passage),
		catalog:  catalog,
	}
}

// SavePassage stores or replaces a passage.
func (s *PassageStore) SavePassage(_ context.Context, p domain.Passage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passages[p.ID] = p
	return nil
}

// GetStamp returns the staleness projection for a passage.
func (s *PassageStore) GetStamp(_ context.Context, passageID string) (driven.PassageStamp, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.passages[passageID]
	if !ok {
		return driven.PassageStamp{}, domain.ErrNotFound
	}
	return driven.PassageStamp{UpdatedAt: p.UpdatedAt, EmbeddingModel: p.EmbeddingModel}, nil
}

// GetPassage returns the full passage snapshot.
func (s *PassageStore) GetPassage(_ context.Context, passageID string) (*domain.Passage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.passages[passageID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

// ListMentions returns records referencing the passage, insertion order.
func (s *PassageStore) ListMentions(_ context.Context, passageID string) ([]domain.RecordSummary, error) {
	if s.catalog == nil {
		return nil, nil
	}
	return s.catalog.ListReferencing(passageID), nil
}

package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/versewell/lumen/internal/core/domain"
	"github.com/versewell/lumen/internal/core/ports/driven"
)

// Ensure CatalogStore implements the interface.
var _ driven.CatalogStore = (*CatalogStore)(nil)

// CatalogStore is an in-memory implementation of driven.CatalogStore.
// Records keep their insertion order, which serves as the join priority
// for shared-passage and keyword queries.
type CatalogStore struct {
	mu      sync.RWMutex
	records []domain.Record
	bySlug  map[string]int      // entityType + "\x00" + slug -> records index
	refs    map[string][]string // entityType + "\x00" + recordID -> passage IDs
}

// NewCatalogStore creates a new in-memory catalog store.
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		bySlug: make(map[string]int),
		refs:   make(map[string][]string),
	}
}

// SaveRecord stores or replaces a record.
func (s *CatalogStore) SaveRecord(_ context.Context, record domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := recordKey(record.EntityType(), record.Meta().Slug)
	if i, ok := s.bySlug[key]; ok {
		s.records[i] = record
		return nil
	}
	s.bySlug[key] = len(s.records)
	s.records = append(s.records, record)
	return nil
}

// SetPassageRefs stores the passage references for a record, replacing any
// existing list.
func (s *CatalogStore) SetPassageRefs(entityType domain.EntityType, recordID string, passageIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refs[recordKey(entityType, recordID)] = append([]string(nil), passageIDs...)
}

// GetRecord retrieves a record by entity type and slug.
func (s *CatalogStore) GetRecord(_ context.Context, entityType domain.EntityType, slug string) (domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.bySlug[recordKey(entityType, slug)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.records[i], nil
}

// ListByType returns summaries of all records of one type, title ascending.
func (s *CatalogStore) ListByType(_ context.Context, entityType domain.EntityType) ([]domain.RecordSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.RecordSummary
	for _, r := range s.records {
		if r.EntityType() == entityType {
			out = append(out, domain.Summarize(r))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

// ListByAttribute returns same-type summaries sharing a normalized
// attribute value, priority descending then title ascending.
func (s *CatalogStore) ListByAttribute(_ context.Context, entityType domain.EntityType, attr driven.Attribute, value, excludeID string, limit int) ([]domain.RecordSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.RecordSummary
	for _, r := range s.records {
		if r.EntityType() != entityType {
			continue
		}
		summary := domain.Summarize(r)
		if summary.ID == excludeID {
			continue
		}
		if domain.NormalizeSlug(attributeValue(summary, attr)) != value {
			continue
		}
		out = append(out, summary)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].Title < out[j].Title
	})

	return capped(out, limit), nil
}

// PassageRefs returns the passage IDs a record references.
func (s *CatalogStore) PassageRefs(_ context.Context, entityType domain.EntityType, recordID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	refs := s.refs[recordKey(entityType, recordID)]
	return append([]string(nil), refs...), nil
}

// ListMentionsOfPassages returns records referencing any of the passages,
// excluding one entity type and one record, in insertion order.
func (s *CatalogStore) ListMentionsOfPassages(_ context.Context, passageIDs []string, excludeType domain.EntityType, excludeID string, limit int) ([]domain.RecordSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[string]bool, len(passageIDs))
	for _, id := range passageIDs {
		wanted[id] = true
	}

	var out []domain.RecordSummary
	for _, r := range s.records {
		meta := r.Meta()
		if r.EntityType() == excludeType || meta.ID == excludeID {
			continue
		}
		for _, ref := range s.refs[recordKey(r.EntityType(), meta.ID)] {
			if wanted[ref] {
				out = append(out, domain.Summarize(r))
				break
			}
		}
	}
	return capped(out, limit), nil
}

// SearchKeywords returns records whose title or category contains any
// keyword case-insensitively, in insertion order.
func (s *CatalogStore) SearchKeywords(_ context.Context, keywords []string, excludeID string, limit int) ([]domain.RecordSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.RecordSummary
	for _, r := range s.records {
		meta := r.Meta()
		if meta.ID == excludeID {
			continue
		}
		haystack := strings.ToLower(meta.Title + " " + meta.Category)
		for _, kw := range keywords {
			if kw != "" && strings.Contains(haystack, strings.ToLower(kw)) {
				out = append(out, domain.Summarize(r))
				break
			}
		}
	}
	return capped(out, limit), nil
}

// ListReferencing returns summaries of records referencing a passage, in
// insertion order. Used by the passage store for relational mentions.
func (s *CatalogStore) ListReferencing(passageID string) []domain.RecordSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.RecordSummary
	for _, r := range s.records {
		meta := r.Meta()
		for _, ref := range s.refs[recordKey(r.EntityType(), meta.ID)] {
			if ref == passageID {
				out = append(out, domain.Summarize(r))
				break
			}
		}
	}
	return out
}

func recordKey(entityType domain.EntityType, slugOrID string) string {
	return string(entityType) + "\x00" + slugOrID
}

func attributeValue(s domain.RecordSummary, attr driven.Attribute) string {
	switch attr {
	case driven.AttributeCategory:
		return s.Category
	case driven.AttributeRegion:
		return s.Region
	case driven.AttributeCountry:
		return s.Country
	}
	return ""
}

func capped(items []domain.RecordSummary, limit int) []domain.RecordSummary {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

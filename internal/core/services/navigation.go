package services

import (
	"context"
	"fmt"

	"github.com/versewell/lumen/internal/core/domain"
	"github.com/versewell/lumen/internal/core/ports/driven"
	"github.com/versewell/lumen/internal/core/ports/driving"
)

// Ensure NavigationService implements the interface.
var _ driving.Navigator = (*NavigationService)(nil)

// NavigationService builds breadcrumbs and category groupings for page
// rendering. The label source is optional: without it, built-in labels
// and slug title-casing apply.
type NavigationService struct {
	catalog driven.CatalogStore
	labels  driven.LabelSource
}

// NewNavigationService creates a navigation service. labels may be nil.
func NewNavigationService(catalog driven.CatalogStore, labels driven.LabelSource) *NavigationService {
	return &NavigationService{catalog: catalog, labels: labels}
}

// Breadcrumbs returns the fixed three-hop trail for a detail page.
// Total: any input yields a valid trail.
func (s *NavigationService) Breadcrumbs(entityType domain.EntityType, title, slug string) []domain.BreadcrumbItem {
	return domain.BreadcrumbsFor(entityType, title, slug)
}

// Categories returns every record of an entity type bucketed by normalized
// category and sorted by (order, label).
func (s *NavigationService) Categories(ctx context.Context, entityType domain.EntityType) ([]domain.CategoryGroup, error) {
	if s.catalog == nil {
		return nil, domain.ErrStoreUnavailable
	}

	items, err := s.catalog.ListByType(ctx, entityType)
	if err != nil {
		return nil, fmt.Errorf("list %s records: %w", entityType, err)
	}

	return domain.GroupByCategory(items, func(item domain.RecordSummary) string {
		return item.Category
	}, s.labelOverride()), nil
}

func (s *NavigationService) labelOverride() domain.LabelOverride {
	if s.labels == nil {
		return nil
	}
	return s.labels.Label
}

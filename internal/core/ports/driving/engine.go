package driving

import (
	"context"

	"github.com/versewell/lumen/internal/core/domain"
)

// QualityEvaluator decides whether a record is good enough to publish.
// Evaluation is pure: no I/O, identical input yields identical output, and
// it never fails — missing data fails gates instead of raising errors, so
// callers may evaluate speculatively (e.g. live previews).
//
// The editorial publish workflow must require OK == true before moving a
// record from draft to published; unpublishing is always allowed.
type QualityEvaluator interface {
	// Evaluate produces the publish-gate verdict for a record snapshot.
	Evaluate(record domain.Record) domain.QualityResult
}

// RelationshipResolver computes the ranked, capped related-links list for
// a record. A store read failure is returned as an error, distinct from an
// empty result: callers must be able to tell "failed to compute" from
// "legitimately has none".
type RelationshipResolver interface {
	// RelatedLinks returns at most domain.MaxRelatedLinks links, never
	// including the record itself.
	RelatedLinks(ctx context.Context, record domain.Record) ([]domain.RelatedLink, error)
}

// Navigator builds navigation structures for page rendering.
type Navigator interface {
	// Breadcrumbs returns the fixed-depth trail for a detail page.
	Breadcrumbs(entityType domain.EntityType, title, slug string) []domain.BreadcrumbItem

	// Categories returns every record of an entity type bucketed and
	// sorted by normalized category.
	Categories(ctx context.Context, entityType domain.EntityType) ([]domain.CategoryGroup, error)
}

// IntelProvider resolves the memoized semantic intelligence payload for a
// passage.
type IntelProvider interface {
	// IntelligenceFor returns the subject snapshot, its relational
	// mentions and its top-K semantic matches, served from cache when
	// fresh.
	IntelligenceFor(ctx context.Context, subjectID string) (*domain.IntelPayload, error)

	// Invalidate administratively removes all cached payloads for a
	// subject.
	Invalidate(subjectID string)
}

package driven

import (
	"context"

	"github.com/versewell/lumen/internal/core/domain"
)

// Attribute selects which shared attribute an attribute-similarity query
// joins on.
type Attribute string

const (
	// AttributeCategory joins on the normalized category slug.
	AttributeCategory Attribute = "category"
	// AttributeRegion joins on the region label.
	AttributeRegion Attribute = "region"
	// AttributeCountry joins on the country label (places).
	AttributeCountry Attribute = "country"
)

// CatalogStore provides read-only typed projections over the content
// catalog. Implementations must return domain.ErrNotFound for legitimately
// absent rows and wrap every other failure, so callers can distinguish
// "has none" from "failed to read".
type CatalogStore interface {
	// GetRecord returns the full record snapshot for an entity type and slug.
	GetRecord(ctx context.Context, entityType domain.EntityType, slug string) (domain.Record, error)

	// ListByType returns summaries of every record of one entity type,
	// ordered by title ascending.
	ListByType(ctx context.Context, entityType domain.EntityType) ([]domain.RecordSummary, error)

	// ListByAttribute returns summaries of records of the same entity type
	// sharing the given attribute value, ordered by priority descending then
	// title ascending, excluding excludeID, up to limit.
	ListByAttribute(ctx context.Context, entityType domain.EntityType, attr Attribute, value, excludeID string, limit int) ([]domain.RecordSummary, error)

	// PassageRefs returns the IDs of passages the record references,
	// in insertion order.
	PassageRefs(ctx context.Context, entityType domain.EntityType, recordID string) ([]string, error)

	// ListMentionsOfPassages returns summaries of records referencing any of
	// the given passages, excluding records of excludeType, in insertion
	// order, up to limit.
	ListMentionsOfPassages(ctx context.Context, passageIDs []string, excludeType domain.EntityType, excludeID string, limit int) ([]domain.RecordSummary, error)

	// SearchKeywords returns summaries of records whose title or category
	// contains any keyword case-insensitively, excluding excludeID, up to
	// limit.
	SearchKeywords(ctx context.Context, keywords []string, excludeID string, limit int) ([]domain.RecordSummary, error)
}

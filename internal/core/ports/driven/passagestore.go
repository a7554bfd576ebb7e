package driven

import (
	"context"
	"time"

	"github.com/versewell/lumen/internal/core/domain"
)

// PassageStamp is the cheap staleness projection fetched before deciding
// whether a cached intelligence payload can be served.
type PassageStamp struct {
	// UpdatedAt is the passage's last edit timestamp.
	UpdatedAt time.Time

	// EmbeddingModel names the model the passage is indexed under.
	// Empty when the passage has no embedding.
	EmbeddingModel string
}

// PassageStore provides read access to scripture passages.
type PassageStore interface {
	// GetStamp returns the staleness projection for a passage.
	GetStamp(ctx context.Context, passageID string) (PassageStamp, error)

	// GetPassage returns the full passage snapshot.
	GetPassage(ctx context.Context, passageID string) (*domain.Passage, error)

	// ListMentions returns summaries of catalog records that reference the
	// passage, in insertion order.
	ListMentions(ctx context.Context, passageID string) ([]domain.RecordSummary, error)
}

// EmbeddingStore provides read access to precomputed embedding vectors.
// Vectors are produced by an indexing pipeline outside this module.
type EmbeddingStore interface {
	// GetEmbedding returns the vector for a passage under a model.
	// domain.ErrNotFound when the passage is not indexed under that model.
	GetEmbedding(ctx context.Context, passageID, model string) (*domain.EmbeddingVector, error)

	// ListRecent returns up to limit vectors for a model, most recently
	// indexed first, excluding excludeID. This is the bounded candidate
	// pool for similarity search.
	ListRecent(ctx context.Context, model string, limit int, excludeID string) ([]domain.EmbeddingVector, error)
}

package domain

import "time"

// Passage is a scripture passage record. Passages are the shared reference
// currency of the catalog: every entity type cross-links to them, and
// semantic similarity is computed between their embedding vectors.
type Passage struct {
	// ID is the unique passage identifier.
	ID string

	// Slug is the URL-safe identifier under PassageSectionPath.
	Slug string

	// Reference is the human-readable citation, e.g. "Psalm 121:1-2".
	Reference string

	// Text is the passage text.
	Text string

	// EmbeddingModel names the model the passage is indexed under, if any.
	EmbeddingModel string

	// UpdatedAt is the last edit timestamp, used for cache invalidation.
	UpdatedAt time.Time
}

// Href returns the site path of the passage's detail page.
func (p Passage) Href() string {
	return PassageSectionPath + p.Slug
}

// IntelPayload is the semantic intelligence bundle for one passage:
// the subject snapshot, the records that mention it, and its nearest
// semantic neighbours.
type IntelPayload struct {
	// Subject is the passage the payload describes.
	Subject Passage

	// Mentions lists catalog records referencing the subject.
	Mentions []RelatedLink

	// Matches lists the top-K semantically similar passages.
	// Empty when the subject has no embedding (graceful degradation).
	Matches []SemanticMatch
}

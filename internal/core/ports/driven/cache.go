package driven

import (
	"time"

	"github.com/versewell/lumen/internal/core/domain"
)

// IntelKey identifies one cached intelligence payload.
type IntelKey struct {
	// SubjectID is the passage the payload describes.
	SubjectID string

	// Model is the embedding model the payload was computed under.
	Model string
}

// IntelEntry is one cached intelligence payload with its freshness bounds.
type IntelEntry struct {
	// Payload is the full computed payload.
	Payload domain.IntelPayload

	// SubjectUpdatedAt is the subject's UpdatedAt when the payload was
	// built. A hit requires the current value to match.
	SubjectUpdatedAt time.Time

	// ExpiresAt is the TTL bound.
	ExpiresAt time.Time
}

// IntelCache is a per-process cache for intelligence payloads. It is the
// only shared mutable state in the engine; implementations must make
// single-key upsert atomic so a reader never observes a half-written
// entry. Concurrent recomputation of the same key is safe: last write
// wins.
type IntelCache interface {
	// Get returns the entry for a key, if present. Expiry is the caller's
	// concern: the cache stores entries, the service judges freshness.
	Get(key IntelKey) (IntelEntry, bool)

	// Upsert stores an entry, unconditionally overwriting any existing
	// entry for the key.
	Upsert(key IntelKey, entry IntelEntry)

	// Invalidate removes all entries for a subject, across models.
	Invalidate(subjectID string)
}

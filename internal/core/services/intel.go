package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/versewell/lumen/internal/core/domain"
	"github.com/versewell/lumen/internal/core/ports/driven"
	"github.com/versewell/lumen/internal/core/ports/driving"
	"github.com/versewell/lumen/internal/logger"
)

// Ensure IntelService implements the interface.
var _ driving.IntelProvider = (*IntelService)(nil)

// Intelligence defaults. All three are configurable; zero config values
// fall back to these.
const (
	// DefaultIntelTTL bounds how long a cached payload may be served.
	DefaultIntelTTL = 5 * time.Minute

	// DefaultCandidatePool bounds the similarity search to the most
	// recently indexed embeddings for the subject's model.
	DefaultCandidatePool = 300

	// DefaultTopK is the number of semantic matches returned.
	DefaultTopK = 5
)

// IntelConfig tunes the intelligence provider.
type IntelConfig struct {
	// TTL is the cache entry lifetime.
	TTL time.Duration

	// CandidatePool is the similarity search pool size.
	CandidatePool int

	// TopK is the number of matches selected.
	TopK int
}

// withDefaults fills zero values.
func (c IntelConfig) withDefaults() IntelConfig {
	if c.TTL <= 0 {
		c.TTL = DefaultIntelTTL
	}
	if c.CandidatePool <= 0 {
		c.CandidatePool = DefaultCandidatePool
	}
	if c.TopK <= 0 {
		c.TopK = DefaultTopK
	}
	return c
}

// IntelService resolves the semantic intelligence payload for a passage,
// memoized per (subject, embedding model) with a TTL and a subject
// staleness check. Recomputation is idempotent, so concurrent requests
// racing on the same key are safe: last write wins.
type IntelService struct {
	passages   driven.PassageStore
	embeddings driven.EmbeddingStore
	cache      driven.IntelCache
	cfg        IntelConfig

	// now is injectable for tests.
	now func() time.Time
}

// NewIntelService creates an intelligence provider. cache may be nil, in
// which case every request recomputes.
func NewIntelService(passages driven.PassageStore, embeddings driven.EmbeddingStore, cache driven.IntelCache, cfg IntelConfig) *IntelService {
	return &IntelService{
		passages:   passages,
		embeddings: embeddings,
		cache:      cache,
		cfg:        cfg.withDefaults(),
		now:        time.Now,
	}
}

// IntelligenceFor returns the subject snapshot, its relational mentions
// and its top-K semantic matches. A cache entry is served only when it has
// not expired and was built from the subject's current UpdatedAt; a
// changed subject forces recomputation even inside the TTL window.
func (s *IntelService) IntelligenceFor(ctx context.Context, subjectID string) (*domain.IntelPayload, error) {
	if s.passages == nil {
		return nil, domain.ErrStoreUnavailable
	}

	logger.Section("Passage Intelligence")
	logger.Debug("Subject: %s", subjectID)

	// Cheap projection first: staleness stamp and model identifier.
	stamp, err := s.passages.GetStamp(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("subject stamp: %w", err)
	}

	key := driven.IntelKey{SubjectID: subjectID, Model: stamp.EmbeddingModel}
	if s.cache != nil {
		if entry, ok := s.cache.Get(key); ok {
			if s.now().Before(entry.ExpiresAt) && entry.SubjectUpdatedAt.Equal(stamp.UpdatedAt) {
				logger.Debug("Cache hit")
				return &entry.Payload, nil
			}
			logger.Debug("Cache entry stale (expired or subject changed)")
		}
	}

	payload, err := s.compute(ctx, subjectID, stamp.EmbeddingModel)
	if err != nil {
		return nil, err
	}

	// Writes happen only after a full payload exists: an aborted request
	// must not leave partial state behind.
	if s.cache != nil && ctx.Err() == nil {
		s.cache.Upsert(key, driven.IntelEntry{
			Payload:          *payload,
			SubjectUpdatedAt: stamp.UpdatedAt,
			ExpiresAt:        s.now().Add(s.cfg.TTL),
		})
	}

	return payload, nil
}

// Invalidate removes all cached payloads for a subject, across models.
func (s *IntelService) Invalidate(subjectID string) {
	if s.cache != nil {
		s.cache.Invalidate(subjectID)
	}
}

func (s *IntelService) compute(ctx context.Context, subjectID, model string) (*domain.IntelPayload, error) {
	subject, err := s.passages.GetPassage(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("subject snapshot: %w", err)
	}

	mentionSummaries, err := s.passages.ListMentions(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("mentions: %w", err)
	}
	mentions := make([]domain.RelatedLink, 0, len(mentionSummaries))
	for _, m := range mentionSummaries {
		mentions = append(mentions, domain.RelatedLinkFrom(m))
	}

	matches, err := s.semanticMatches(ctx, subjectID, model)
	if err != nil {
		return nil, err
	}

	logger.Info("Computed payload: %d mentions, %d matches", len(mentions), len(matches))
	return &domain.IntelPayload{
		Subject:  *subject,
		Mentions: mentions,
		Matches:  matches,
	}, nil
}

// semanticMatches runs the bounded nearest-neighbour scan. A subject with
// no embedding degrades to an empty match list; only a vector length
// mismatch is a hard error.
func (s *IntelService) semanticMatches(ctx context.Context, subjectID, model string) ([]domain.SemanticMatch, error) {
	matches := []domain.SemanticMatch{}
	if model == "" || s.embeddings == nil {
		logger.Debug("No embedding model for subject, skipping similarity")
		return matches, nil
	}

	subjectVec, err := s.embeddings.GetEmbedding(ctx, subjectID, model)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Debug("Subject not indexed under %s, skipping similarity", model)
			return matches, nil
		}
		return nil, fmt.Errorf("subject embedding: %w", err)
	}

	pool, err := s.embeddings.ListRecent(ctx, model, s.cfg.CandidatePool, subjectID)
	if err != nil {
		return nil, fmt.Errorf("candidate pool: %w", err)
	}
	logger.Debug("Candidate pool: %d vectors", len(pool))

	type scored struct {
		index int
		id    string
		score float64
	}
	ranked := make([]scored, 0, len(pool))
	for i, candidate := range pool {
		if candidate.PassageID == subjectID {
			continue
		}
		score, err := domain.CosineSimilarity(subjectVec.Vector, candidate.Vector)
		if err != nil {
			return nil, fmt.Errorf("candidate %s: %w", candidate.PassageID, err)
		}
		ranked = append(ranked, scored{index: i, id: candidate.PassageID, score: score})
	}

	// Score descending; the stable sort keeps candidate index ascending on
	// ties, which makes the ordering deterministic.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	if len(ranked) > s.cfg.TopK {
		ranked = ranked[:s.cfg.TopK]
	}

	for _, r := range ranked {
		passage, err := s.passages.GetPassage(ctx, r.id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("match %s: %w", r.id, err)
		}
		matches = append(matches, domain.SemanticMatch{
			Reference: passage.Reference,
			Snippet:   domain.TruncateSnippet(passage.Text, domain.RelatedSnippetLimit),
			Href:      passage.Href(),
			Score:     r.score,
		})
	}

	return matches, nil
}

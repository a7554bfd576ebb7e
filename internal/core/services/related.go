package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/versewell/lumen/internal/core/domain"
	"github.com/versewell/lumen/internal/core/ports/driven"
	"github.com/versewell/lumen/internal/core/ports/driving"
	"github.com/versewell/lumen/internal/logger"
)

// Ensure Resolver implements the interface.
var _ driving.RelationshipResolver = (*Resolver)(nil)

// Candidate take limits per step. Step order is the priority order: the
// final list concatenates step results without cross-step re-sorting.
const (
	attributeTake = 3
	keywordTake   = 2

	// minKeywordRunes excludes short stop-ish words from keyword overlap.
	minKeywordRunes = 4
)

// crossTypeTake returns how many shared-passage candidates a type takes.
// Itineraries and names have sparse catalogs, so passage joins carry more
// of their relation budget.
func crossTypeTake(t domain.EntityType) int {
	if t == domain.EntityItinerary || t == domain.EntityName {
		return 3
	}
	return 2
}

// Resolver computes the ranked, capped related-links list for a record by
// running an ordered sequence of candidate queries against the catalog
// store. A store read failure propagates as an error, distinct from the
// valid empty result.
type Resolver struct {
	catalog driven.CatalogStore
}

// NewResolver creates a relationship resolver.
func NewResolver(catalog driven.CatalogStore) *Resolver {
	return &Resolver{catalog: catalog}
}

// RelatedLinks returns at most domain.MaxRelatedLinks links for the
// record, never including the record itself. Steps with absent
// precondition data are skipped rather than erroring.
func (r *Resolver) RelatedLinks(ctx context.Context, record domain.Record) ([]domain.RelatedLink, error) {
	if r.catalog == nil {
		return nil, domain.ErrStoreUnavailable
	}

	meta := record.Meta()
	entityType := record.EntityType()
	logger.Section("Related Links")
	logger.Debug("Record: %s/%s", entityType, meta.Slug)

	assembled := newLinkAssembler(entityType, meta)

	// Step 1: same-type records sharing a normalized attribute.
	if attr, value, ok := similarityAttribute(record); ok {
		candidates, err := r.catalog.ListByAttribute(ctx, entityType, attr, value, meta.ID, attributeTake)
		if err != nil {
			return nil, fmt.Errorf("attribute candidates: %w", err)
		}
		logger.Debug("Attribute step (%s=%s): %d candidates", attr, value, len(candidates))
		assembled.add(candidates, attributeTake)
	} else {
		logger.Debug("Attribute step skipped: no usable attribute")
	}

	// Step 2: cross-type records sharing passage references.
	if !assembled.full() {
		passageIDs, err := r.catalog.PassageRefs(ctx, entityType, meta.ID)
		if err != nil {
			return nil, fmt.Errorf("passage refs: %w", err)
		}
		if len(passageIDs) > 0 {
			take := crossTypeTake(entityType)
			candidates, err := r.catalog.ListMentionsOfPassages(ctx, passageIDs, entityType, meta.ID, take)
			if err != nil {
				return nil, fmt.Errorf("shared-passage candidates: %w", err)
			}
			logger.Debug("Passage step (%d refs): %d candidates", len(passageIDs), len(candidates))
			assembled.add(candidates, take)
		} else {
			logger.Debug("Passage step skipped: no references")
		}
	}

	// Step 3: keyword overlap, for records with no direct relations.
	if !assembled.full() {
		keywords := overlapKeywords(meta)
		if len(keywords) > 0 {
			candidates, err := r.catalog.SearchKeywords(ctx, keywords, meta.ID, keywordTake)
			if err != nil {
				return nil, fmt.Errorf("keyword candidates: %w", err)
			}
			logger.Debug("Keyword step (%v): %d candidates", keywords, len(candidates))
			assembled.add(candidates, keywordTake)
		} else {
			logger.Debug("Keyword step skipped: no usable keywords")
		}
	}

	links := assembled.links()
	logger.Info("Related links: %d", len(links))
	return links, nil
}

// similarityAttribute picks the shared attribute for step 1: country for
// places, otherwise category, falling back to region. Returns false when
// the record has no usable attribute.
func similarityAttribute(record domain.Record) (driven.Attribute, string, bool) {
	meta := record.Meta()
	if place, ok := record.(domain.Place); ok && strings.TrimSpace(place.Country) != "" {
		return driven.AttributeCountry, domain.NormalizeSlug(place.Country), true
	}
	if strings.TrimSpace(meta.Category) != "" {
		return driven.AttributeCategory, domain.NormalizeSlug(meta.Category), true
	}
	if strings.TrimSpace(meta.Region) != "" {
		return driven.AttributeRegion, domain.NormalizeSlug(meta.Region), true
	}
	return "", "", false
}

// overlapKeywords tokenizes the record's title and category into keyword
// candidates longer than minKeywordRunes-1 runes, lowercased.
func overlapKeywords(meta domain.RecordMeta) []string {
	fields := strings.Fields(strings.ToLower(meta.Title + " " + meta.Category))
	var keywords []string
	seen := make(map[string]bool)
	for _, f := range fields {
		f = strings.Trim(f, ".,!?:;\"'()-")
		if len([]rune(f)) < minKeywordRunes || seen[f] {
			continue
		}
		seen[f] = true
		keywords = append(keywords, f)
	}
	return keywords
}

// linkAssembler concatenates step results, deduplicates by target, drops
// the querying record, and enforces the hard cap.
type linkAssembler struct {
	selfHref string
	seen     map[string]bool
	out      []domain.RelatedLink
}

func newLinkAssembler(entityType domain.EntityType, meta domain.RecordMeta) *linkAssembler {
	return &linkAssembler{
		selfHref: meta.Href(entityType),
		seen:     make(map[string]bool),
	}
}

func (a *linkAssembler) add(candidates []domain.RecordSummary, take int) {
	added := 0
	for _, c := range candidates {
		if added >= take || a.full() {
			return
		}
		href := c.Href()
		if href == a.selfHref || a.seen[href] {
			continue
		}
		a.seen[href] = true
		a.out = append(a.out, domain.RelatedLinkFrom(c))
		added++
	}
}

func (a *linkAssembler) full() bool {
	return len(a.out) >= domain.MaxRelatedLinks
}

func (a *linkAssembler) links() []domain.RelatedLink {
	if len(a.out) > domain.MaxRelatedLinks {
		return a.out[:domain.MaxRelatedLinks]
	}
	return a.out
}

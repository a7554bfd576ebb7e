package services

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/versewell/lumen/internal/core/domain"
	"github.com/versewell/lumen/internal/core/ports/driving"
	"github.com/versewell/lumen/internal/markup"
)

// Ensure QualityGate implements the interface.
var _ driving.QualityEvaluator = (*QualityGate)(nil)

// Gate thresholds. The score is advisory; each threshold below blocks
// publication independently.
const (
	minWordCount       = 300
	minInternalLinks   = 3
	minIntroWords      = 50
	minConclusionWords = 30
	minDensityScore    = 4

	// densityCap bounds the entity density score after summing weights.
	densityCap = 10

	// introFallbackChars bounds the intro candidate when the content has
	// no paragraph-like blocks.
	introFallbackChars = 500
)

// densityRule is one weighted cross-link pattern. A record earns the
// weight when at least one internal anchor targets the rule's section.
type densityRule struct {
	prefix string
	label  string
	weight int
}

// densityRules returns the fixed rule set for an entity type. Different
// entity types should cross-link to different neighbours, so each type
// carries its own list; weights sum to 10 per type.
func densityRules(t domain.EntityType) []densityRule {
	verse := densityRule{domain.PassageSectionPath, "verse", 4}
	switch t {
	case domain.EntityPlace:
		return []densityRule{
			verse,
			{domain.EntityPlace.SectionPath(), "place", 3},
			{domain.EntityItinerary.SectionPath(), "itinerary", 3},
		}
	case domain.EntitySituation:
		return []densityRule{
			verse,
			{domain.EntityPrayerPoint.SectionPath(), "prayer point", 3},
			{domain.EntityProfession.SectionPath(), "profession", 3},
		}
	case domain.EntityProfession:
		return []densityRule{
			verse,
			{domain.EntitySituation.SectionPath(), "situation", 3},
			{domain.EntityName.SectionPath(), "name", 3},
		}
	case domain.EntityPrayerPoint:
		return []densityRule{
			verse,
			{domain.EntitySituation.SectionPath(), "situation", 3},
			{domain.EntityPlace.SectionPath(), "place", 3},
		}
	case domain.EntityName:
		return []densityRule{
			verse,
			{domain.EntityName.SectionPath(), "name", 3},
			{domain.EntityProfession.SectionPath(), "profession", 3},
		}
	case domain.EntityItinerary:
		return []densityRule{
			{domain.EntityPlace.SectionPath(), "place", 4},
			verse,
			{domain.EntityName.SectionPath(), "name", 2},
		}
	}
	return nil
}

// QualityGate evaluates whether a content record is good enough to
// publish. Evaluation is pure: it performs no I/O and identical input
// always yields an identical result, so it is safe to call speculatively.
type QualityGate struct {
	siteHost string
}

// NewQualityGate creates a quality gate. siteHost is the site's canonical
// host; absolute anchor targets on that host (or a subdomain) count as
// internal links.
func NewQualityGate(siteHost string) *QualityGate {
	return &QualityGate{siteHost: strings.ToLower(strings.TrimSpace(siteHost))}
}

// Evaluate produces the publish-gate verdict for a record snapshot.
// Missing fields are treated as empty strings and fail the gates rather
// than raising an error.
func (g *QualityGate) Evaluate(record domain.Record) domain.QualityResult {
	combinedMarkup := strings.Join(record.MarkupFields(), "\n")
	combinedText := g.combinedText(record, combinedMarkup)

	metrics := g.measure(record.EntityType(), combinedMarkup, combinedText)
	missing := g.missingDensityLabels(record.EntityType(), combinedMarkup)

	reasons := g.reasons(metrics, missing)
	return domain.QualityResult{
		OK:      len(reasons) == 0,
		Score:   g.score(metrics),
		Reasons: reasons,
		Metrics: metrics,
	}
}

// combinedText concatenates the record's plain-text fields with the
// markup-stripped body, preserving block boundaries as newlines.
func (g *QualityGate) combinedText(record domain.Record, combinedMarkup string) string {
	parts := make([]string, 0, len(record.PlainFields())+1)
	for _, field := range record.PlainFields() {
		if field = strings.TrimSpace(field); field != "" {
			parts = append(parts, field)
		}
	}
	if stripped := markup.StripTags(combinedMarkup); stripped != "" {
		parts = append(parts, stripped)
	}
	return strings.Join(parts, "\n")
}

func (g *QualityGate) measure(entityType domain.EntityType, combinedMarkup, combinedText string) domain.QualityMetrics {
	anchors := markup.ExtractAnchors(combinedMarkup)

	internal := 0
	entityLinks := false
	for _, a := range anchors {
		path, ok := g.internalPath(a.Href)
		if !ok {
			continue
		}
		internal++
		if !entityLinks && g.isEntityLink(entityType, path) {
			entityLinks = true
		}
	}

	blocks := markup.Blocks(combinedText)

	return domain.QualityMetrics{
		WordCount:          wordCount(combinedText),
		InternalLinkCount:  internal,
		EntityLinksPresent: entityLinks,
		HasIntro:           introWords(blocks, combinedText) >= minIntroWords,
		HasConclusion:      conclusionWords(blocks, combinedText) >= minConclusionWords,
		EntityDensityScore: g.densityScore(entityType, combinedMarkup),
	}
}

// internalPath resolves an anchor target to a site path when the target is
// internal: a root-relative path (but not protocol-relative), or an
// absolute URL on the site's own host.
func (g *QualityGate) internalPath(href string) (string, bool) {
	if href == "" {
		return "", false
	}
	if strings.HasPrefix(href, "/") {
		if strings.HasPrefix(href, "//") {
			return "", false
		}
		return href, true
	}
	if g.siteHost == "" {
		return "", false
	}
	u, err := url.Parse(href)
	if err != nil || u.Host == "" {
		return "", false
	}
	host := strings.ToLower(u.Hostname())
	if host == g.siteHost || strings.HasSuffix(host, "."+g.siteHost) {
		return u.Path, true
	}
	return "", false
}

// isEntityLink reports whether an internal path targets another entity
// type's content section (or the passage section).
func (g *QualityGate) isEntityLink(own domain.EntityType, path string) bool {
	if strings.HasPrefix(path, domain.PassageSectionPath) {
		return true
	}
	for _, et := range domain.EntityTypes() {
		if et == own {
			continue
		}
		if strings.HasPrefix(path, et.SectionPath()) {
			return true
		}
	}
	return false
}

// densityScore sums the weights of matched cross-link rules, capped.
func (g *QualityGate) densityScore(entityType domain.EntityType, combinedMarkup string) int {
	score := 0
	for _, rule := range densityRules(entityType) {
		if g.ruleMatches(rule, combinedMarkup) {
			score += rule.weight
		}
	}
	if score > densityCap {
		score = densityCap
	}
	return score
}

func (g *QualityGate) missingDensityLabels(entityType domain.EntityType, combinedMarkup string) []string {
	var missing []string
	for _, rule := range densityRules(entityType) {
		if !g.ruleMatches(rule, combinedMarkup) {
			missing = append(missing, rule.label)
		}
	}
	return missing
}

func (g *QualityGate) ruleMatches(rule densityRule, combinedMarkup string) bool {
	for _, a := range markup.ExtractAnchors(combinedMarkup) {
		if path, ok := g.internalPath(a.Href); ok && strings.HasPrefix(path, rule.prefix) {
			return true
		}
	}
	return false
}

// score computes the informational 0-100 quality score.
func (g *QualityGate) score(m domain.QualityMetrics) int {
	s := 40 * math.Min(1, float64(m.WordCount)/float64(minWordCount))
	s += 25 * math.Min(1, float64(m.InternalLinkCount)/float64(minInternalLinks))
	if m.EntityLinksPresent {
		s += 15
	}
	if m.HasIntro {
		s += 10
	}
	if m.HasConclusion {
		s += 10
	}
	return int(math.Round(s))
}

// reasons lists the failed gates in their fixed order. The order is part
// of the contract: editorial tooling shows the first reason as the primary
// blocker.
func (g *QualityGate) reasons(m domain.QualityMetrics, missing []string) []string {
	var reasons []string
	if m.WordCount < minWordCount {
		reasons = append(reasons, fmt.Sprintf("Word count too low: %d < %d required", m.WordCount, minWordCount))
	}
	if !m.HasIntro {
		reasons = append(reasons, fmt.Sprintf("Missing introduction: first section needs %d words", minIntroWords))
	}
	if !m.HasConclusion {
		reasons = append(reasons, fmt.Sprintf("Missing conclusion: final section needs %d words", minConclusionWords))
	}
	if m.InternalLinkCount < minInternalLinks {
		reasons = append(reasons, fmt.Sprintf("Too few internal links: %d < %d required", m.InternalLinkCount, minInternalLinks))
	}
	if !m.EntityLinksPresent {
		reasons = append(reasons, "No links to related catalog entries")
	}
	if m.EntityDensityScore < minDensityScore {
		reasons = append(reasons, fmt.Sprintf("Entity link coverage too sparse: missing %s links", strings.Join(missing, ", ")))
	}
	return reasons
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

// introWords counts the words of the first paragraph-like block, falling
// back to the first introFallbackChars characters when no blocks exist.
func introWords(blocks []string, combinedText string) int {
	if len(blocks) > 0 {
		return wordCount(blocks[0])
	}
	if len(combinedText) > introFallbackChars {
		combinedText = combinedText[:introFallbackChars]
	}
	return wordCount(combinedText)
}

// conclusionWords counts the words of the last paragraph-like block,
// falling back to the trailing words of the combined text when no blocks
// exist.
func conclusionWords(blocks []string, combinedText string) int {
	if len(blocks) > 0 {
		return wordCount(blocks[len(blocks)-1])
	}
	words := strings.Fields(combinedText)
	if len(words) > minConclusionWords {
		words = words[len(words)-minConclusionWords:]
	}
	return len(words)
}

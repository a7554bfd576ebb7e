package domain

// QualityMetrics holds the raw measurements extracted from a record's
// combined text and markup. All counts are non-negative.
type QualityMetrics struct {
	// WordCount is the number of whitespace-delimited tokens in the
	// combined plain text.
	WordCount int

	// InternalLinkCount is the number of anchors resolving within the site.
	InternalLinkCount int

	// EntityLinksPresent is true when at least one anchor targets another
	// entity type's content section.
	EntityLinksPresent bool

	// HasIntro is true when the first paragraph-like block has at least
	// 50 words.
	HasIntro bool

	// HasConclusion is true when the final paragraph-like block has at
	// least 30 words.
	HasConclusion bool

	// EntityDensityScore is the capped sum of matched cross-link rule
	// weights, in [0,10].
	EntityDensityScore int
}

// QualityResult is the publish-gate verdict for a single evaluation.
// It is produced fresh on every call and never persisted by the engine.
//
// Invariant: OK == (len(Reasons) == 0). The score is advisory; failing
// any individual gate blocks publication regardless of the score.
type QualityResult struct {
	// OK is true when every gate passed.
	OK bool

	// Score is the informational quality score in [0,100].
	Score int

	// Reasons lists the failed gates in their fixed evaluation order.
	// Empty exactly when OK is true.
	Reasons []string

	// Metrics are the measurements the verdict was derived from.
	Metrics QualityMetrics
}

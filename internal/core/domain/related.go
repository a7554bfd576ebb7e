package domain

import "strings"

// MaxRelatedLinks is the hard cap on a related-links result list.
const MaxRelatedLinks = 6

// RelatedSnippetLimit is the maximum rune length of a related-link snippet.
const RelatedSnippetLimit = 100

// RelatedLink is a ranked cross-reference from one record to another.
// A result list never contains the querying record itself and holds at
// most MaxRelatedLinks items.
type RelatedLink struct {
	// Href is the site path of the target record.
	Href string

	// Title is the target record's display title.
	Title string

	// Snippet is a short description, at most RelatedSnippetLimit runes.
	Snippet string

	// LinkType is the target record's entity type.
	LinkType EntityType
}

// RelatedLinkFrom builds a RelatedLink from a catalog summary, truncating
// the snippet rune-safely.
func RelatedLinkFrom(s RecordSummary) RelatedLink {
	return RelatedLink{
		Href:     s.Href(),
		Title:    s.Title,
		Snippet:  TruncateSnippet(s.Snippet, RelatedSnippetLimit),
		LinkType: s.EntityType,
	}
}

// TruncateSnippet cuts text to at most limit runes, appending an ellipsis
// only when a cut occurred. Whitespace around the result is trimmed.
func TruncateSnippet(text string, limit int) string {
	text = strings.TrimSpace(text)
	if limit <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}

// Package markup is a bounded utility for extracting text and anchors from
// editorial markup fragments. It supports exactly two operations — tag
// stripping and anchor extraction — and is deliberately not a general
// markup engine: fragments are editorial snippets, not arbitrary pages.
package markup

import (
	"html"
	"regexp"
	"strings"
)

// Pre-compiled regular expressions. Fragments are small, so a regex pass
// is cheaper and simpler than a DOM parse.
var (
	scriptTag     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	htmlComments  = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockClose    = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|blockquote|section|article)>`)
	blockOpen     = regexp.MustCompile(`(?i)<(p|div|h[1-6]|li|blockquote|section|article)[^>]*>`)
	brTags        = regexp.MustCompile(`(?i)<(br|hr)\s*/?>`)
	allTags     = regexp.MustCompile(`<[^>]+>`)
	multiSpaces = regexp.MustCompile(`[ \t]+`)

	anchorTag = regexp.MustCompile(`(?is)<a\s[^>]*?href\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s>]+))[^>]*>(.*?)</a>`)
)

// Anchor is one extracted anchor element.
type Anchor struct {
	// Href is the raw anchor target.
	Href string

	// Text is the anchor's inner text with nested tags stripped.
	Text string
}

// StripTags converts a markup fragment to plain text. Script and style
// blocks are removed entirely, block-element boundaries become newlines,
// all remaining tags are stripped, entities are decoded, and space runs
// collapse to single spaces. Paragraph-like blocks in the result are
// separated by single newlines.
func StripTags(fragment string) string {
	text := scriptTag.ReplaceAllString(fragment, "")
	text = styleTag.ReplaceAllString(text, "")
	text = htmlComments.ReplaceAllString(text, "")

	text = blockOpen.ReplaceAllString(text, "\n")
	text = blockClose.ReplaceAllString(text, "\n")
	text = brTags.ReplaceAllString(text, "\n")

	text = allTags.ReplaceAllString(text, "")
	text = html.UnescapeString(text)

	text = multiSpaces.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	trimmed := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			trimmed = append(trimmed, line)
		}
	}
	return strings.Join(trimmed, "\n")
}

// Blocks returns the paragraph-like blocks of stripped text, in order.
func Blocks(stripped string) []string {
	if stripped == "" {
		return nil
	}
	lines := strings.Split(stripped, "\n")
	blocks := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			blocks = append(blocks, line)
		}
	}
	return blocks
}

// ExtractAnchors returns every anchor element in the fragment, in document
// order. Nested tags inside the anchor body are stripped from Text.
func ExtractAnchors(fragment string) []Anchor {
	matches := anchorTag.FindAllStringSubmatch(fragment, -1)
	if len(matches) == 0 {
		return nil
	}

	anchors := make([]Anchor, 0, len(matches))
	for _, m := range matches {
		href := m[1]
		if href == "" {
			href = m[2]
		}
		if href == "" {
			href = m[3]
		}
		text := allTags.ReplaceAllString(m[4], "")
		text = strings.TrimSpace(html.UnescapeString(text))
		anchors = append(anchors, Anchor{Href: strings.TrimSpace(href), Text: text})
	}
	return anchors
}

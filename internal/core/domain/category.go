package domain

import (
	"sort"
	"strings"
)

// FallbackSlug is the deterministic bucket for null, empty or
// unnormalizable category input.
const FallbackSlug = "other"

const (
	// unknownOrder sorts categories without a built-in order entry.
	unknownOrder = 900
	// fallbackOrder keeps the "other" group last among equal-order groups.
	fallbackOrder = 999
)

// builtinLabels maps normalized category slugs to display labels.
// An externally supplied override table takes precedence over this one.
var builtinLabels = map[string]string{
	"health":        "Health & Healing",
	"family":        "Family",
	"relationships": "Relationships",
	"work":          "Work & Calling",
	"finances":      "Finances",
	"guidance":      "Guidance",
	"gratitude":     "Gratitude",
	"grief":         "Grief & Loss",
	"protection":    "Protection",
	"travel":        "Travel",
	"other":         "Other",
}

// builtinOrders maps normalized category slugs to sort order.
var builtinOrders = map[string]int{
	"health":        10,
	"family":        20,
	"relationships": 30,
	"work":          40,
	"finances":      50,
	"guidance":      60,
	"gratitude":     70,
	"grief":         80,
	"protection":    90,
	"travel":        100,
}

// LabelOverride resolves editorial label overrides for a normalized slug.
// A nil override means no external table is supplied.
type LabelOverride func(slug string) (string, bool)

// NormalizeSlug converts free-text category/region input into a stable
// slug: trim, lowercase, whitespace/underscore runs to single hyphens,
// strip everything outside [a-z0-9-], collapse repeated hyphens, trim
// leading/trailing hyphens. Empty results map to FallbackSlug.
//
// The function is total and idempotent.
func NormalizeSlug(input string) string {
	input = strings.ToLower(strings.TrimSpace(input))

	var b strings.Builder
	b.Grow(len(input))
	lastHyphen := false
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == ' ', r == '\t', r == '\n', r == '\r', r == '_', r == '-':
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		default:
			// Characters outside the slug alphabet are dropped.
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return FallbackSlug
	}
	return slug
}

// LabelFor resolves the display label for a normalized slug: editorial
// override first, then the built-in table, then Title-Casing the slug words.
func LabelFor(slug string, override LabelOverride) string {
	if override != nil {
		if label, ok := override(slug); ok && label != "" {
			return label
		}
	}
	if label, ok := builtinLabels[slug]; ok {
		return label
	}
	return titleCaseSlug(slug)
}

// OrderFor resolves the sort order for a normalized slug. Unknown slugs
// sort at unknownOrder; the fallback slug always sorts last.
func OrderFor(slug string) int {
	if slug == FallbackSlug {
		return fallbackOrder
	}
	if order, ok := builtinOrders[slug]; ok {
		return order
	}
	return unknownOrder
}

// CategoryGroup is a bucket of catalog items sharing a normalized category.
type CategoryGroup struct {
	// Slug is the normalized category slug.
	Slug string

	// Label is the resolved display label.
	Label string

	// Order is the resolved sort order.
	Order int

	// Items holds the bucketed summaries in their input order.
	Items []RecordSummary
}

// GroupByCategory buckets items by their normalized category slug and
// sorts the groups by (order ascending, label ascending). Item order
// within a group follows the input order.
func GroupByCategory(items []RecordSummary, getCategory func(RecordSummary) string, override LabelOverride) []CategoryGroup {
	buckets := make(map[string]*CategoryGroup)
	var order []string

	for _, item := range items {
		slug := NormalizeSlug(getCategory(item))
		group, ok := buckets[slug]
		if !ok {
			group = &CategoryGroup{
				Slug:  slug,
				Label: LabelFor(slug, override),
				Order: OrderFor(slug),
			}
			buckets[slug] = group
			order = append(order, slug)
		}
		group.Items = append(group.Items, item)
	}

	groups := make([]CategoryGroup, 0, len(order))
	for _, slug := range order {
		groups = append(groups, *buckets[slug])
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Order != groups[j].Order {
			return groups[i].Order < groups[j].Order
		}
		return groups[i].Label < groups[j].Label
	})

	return groups
}

// titleCaseSlug turns "war-time-prayers" into "War Time Prayers".
func titleCaseSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

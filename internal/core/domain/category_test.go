package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Health", "health"},
		{"spaces to hyphen", "Work and Calling", "work-and-calling"},
		{"underscore runs", "grief__loss", "grief-loss"},
		{"mixed whitespace", "  family \t matters\n", "family-matters"},
		{"strip punctuation", "Grief & Loss!", "grief-loss"},
		{"collapse hyphens", "a---b", "a-b"},
		{"trim hyphens", "-travel-", "travel"},
		{"digits kept", "Psalm 23", "psalm-23"},
		{"empty", "", "other"},
		{"whitespace only", "   ", "other"},
		{"symbols only", "&&&", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSlug(tt.input))
		})
	}
}

func TestNormalizeSlug_Idempotent(t *testing.T) {
	inputs := []string{"Health & Healing", "", "  Work_Life  ", "Déjà Vu", "other"}
	for _, in := range inputs {
		once := NormalizeSlug(in)
		assert.Equal(t, once, NormalizeSlug(once), "input %q", in)
	}
}

func TestLabelFor(t *testing.T) {
	// Built-in table wins over title-casing.
	assert.Equal(t, "Health & Healing", LabelFor("health", nil))

	// Override wins over built-in.
	override := func(slug string) (string, bool) {
		if slug == "health" {
			return "Wellbeing", true
		}
		return "", false
	}
	assert.Equal(t, "Wellbeing", LabelFor("health", override))

	// Unknown slugs are title-cased.
	assert.Equal(t, "War Time Prayers", LabelFor("war-time-prayers", override))
}

func TestOrderFor(t *testing.T) {
	assert.Equal(t, 10, OrderFor("health"))
	assert.Equal(t, 900, OrderFor("war-time-prayers"))
	assert.Equal(t, 999, OrderFor("other"))
}

func TestGroupByCategory(t *testing.T) {
	items := []RecordSummary{
		{Slug: "a", Category: "Travel"},
		{Slug: "b", Category: ""},
		{Slug: "c", Category: "health"},
		{Slug: "d", Category: "   "},
		{Slug: "e", Category: "Health & Healing"},
	}

	groups := GroupByCategory(items, func(s RecordSummary) string { return s.Category }, nil)
	require.Len(t, groups, 4)

	// (order asc, label asc): health(10), travel(100),
	// health-healing(900, no built-in order), other(999).
	assert.Equal(t, "health", groups[0].Slug)
	assert.Equal(t, "travel", groups[1].Slug)
	assert.Equal(t, "health-healing", groups[2].Slug)
	assert.Equal(t, "other", groups[3].Slug)

	// Empty and whitespace-only categories land in the same fallback bucket.
	require.Len(t, groups[3].Items, 2)
	assert.Equal(t, "b", groups[3].Items[0].Slug)
	assert.Equal(t, "d", groups[3].Items[1].Slug)
}

func TestGroupByCategory_UnknownOrderBeforeFallback(t *testing.T) {
	items := []RecordSummary{
		{Slug: "x", Category: "Zebra Topics"},
		{Slug: "y", Category: ""},
	}
	groups := GroupByCategory(items, func(s RecordSummary) string { return s.Category }, nil)
	require.Len(t, groups, 2)
	assert.Equal(t, "zebra-topics", groups[0].Slug)
	assert.Equal(t, "other", groups[1].Slug)
}

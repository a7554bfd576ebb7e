package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/versewell/lumen/internal/core/domain"
)

const testSiteHost = "versewell.org"

// words produces n distinct whitespace-delimited tokens.
func words(n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(out, " ")
}

// passingSituation builds a record that clears every gate: 300 words, a
// 50-word intro, a 30-word conclusion, three internal links and a verse
// link (density 4 for situations).
func passingSituation() domain.Situation {
	middle := words(216) + ` <a href="/verses/psalm-23">verse</a>` +
		` <a href="/prayer-points/for-peace">peace</a>` +
		` <a href="/contact">contact</a> trailing`
	body := "<p>" + words(50) + "</p><p>" + middle + "</p><p>" + words(30) + "</p>"
	return domain.Situation{
		RecordMeta: domain.RecordMeta{ID: "sit-1", Slug: "anxiety", Title: "Anxiety"},
		Body:       body,
	}
}

func TestQualityGate_BoundaryPasses(t *testing.T) {
	gate := NewQualityGate(testSiteHost)
	result := gate.Evaluate(passingSituation())

	require.Empty(t, result.Reasons, "reasons: %v", result.Reasons)
	assert.True(t, result.OK)
	assert.Equal(t, 300, result.Metrics.WordCount)
	assert.Equal(t, 3, result.Metrics.InternalLinkCount)
	assert.True(t, result.Metrics.EntityLinksPresent)
	assert.True(t, result.Metrics.HasIntro)
	assert.True(t, result.Metrics.HasConclusion)
	assert.GreaterOrEqual(t, result.Metrics.EntityDensityScore, 4)
	assert.Equal(t, 100, result.Score)
}

func TestQualityGate_TwoInternalLinksFails(t *testing.T) {
	record := passingSituation()
	// Swap one internal anchor for its bare text so the word count stays
	// at 300 while the link count drops to 2.
	record.Body = strings.Replace(record.Body, `<a href="/contact">contact</a>`, "contact", 1)

	gate := NewQualityGate(testSiteHost)
	result := gate.Evaluate(record)

	assert.False(t, result.OK)
	require.Len(t, result.Reasons, 1)
	assert.Equal(t, "Too few internal links: 2 < 3 required", result.Reasons[0])
}

func TestQualityGate_EmptyRecordFailsAllGates(t *testing.T) {
	gate := NewQualityGate(testSiteHost)
	result := gate.Evaluate(domain.Place{})

	assert.False(t, result.OK)
	require.Len(t, result.Reasons, 6)

	// Fixed reason order.
	assert.Contains(t, result.Reasons[0], "Word count too low")
	assert.Contains(t, result.Reasons[1], "Missing introduction")
	assert.Contains(t, result.Reasons[2], "Missing conclusion")
	assert.Contains(t, result.Reasons[3], "Too few internal links")
	assert.Equal(t, "No links to related catalog entries", result.Reasons[4])
	assert.Contains(t, result.Reasons[5], "Entity link coverage too sparse")

	assert.Equal(t, 0, result.Metrics.WordCount)
	assert.Equal(t, 0, result.Score)
}

func TestQualityGate_OKMatchesEmptyReasons(t *testing.T) {
	gate := NewQualityGate(testSiteHost)
	records := []domain.Record{
		domain.Place{},
		passingSituation(),
		domain.Name{Meaning: words(100)},
		domain.Itinerary{RouteNotes: "<p>" + words(400) + "</p>"},
	}
	for _, r := range records {
		result := gate.Evaluate(r)
		assert.Equal(t, result.OK, len(result.Reasons) == 0, "type %s", r.EntityType())
	}
}

func TestQualityGate_Idempotent(t *testing.T) {
	gate := NewQualityGate(testSiteHost)
	record := passingSituation()
	first := gate.Evaluate(record)
	second := gate.Evaluate(record)
	assert.Equal(t, first, second)
}

func TestQualityGate_WordCountMonotonic(t *testing.T) {
	gate := NewQualityGate(testSiteHost)
	base := domain.PrayerPoint{Intro: words(40)}
	extended := domain.PrayerPoint{Intro: words(40), Body: "<p>" + words(25) + "</p>"}

	wcBase := gate.Evaluate(base).Metrics.WordCount
	wcExtended := gate.Evaluate(extended).Metrics.WordCount
	assert.GreaterOrEqual(t, wcExtended, wcBase)
	assert.Equal(t, 40, wcBase)
	assert.Equal(t, 65, wcExtended)
}

func TestQualityGate_InternalLinkDetection(t *testing.T) {
	gate := NewQualityGate(testSiteHost)

	tests := []struct {
		name     string
		href     string
		internal bool
	}{
		{"root relative", "/places/nazareth", true},
		{"protocol relative", "//evil.example/x", false},
		{"own domain absolute", "https://versewell.org/places/nazareth", true},
		{"own subdomain", "https://www.versewell.org/names/ruth", true},
		{"external", "https://example.org/places/nazareth", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := fmt.Sprintf(`<p><a href=%q>link</a></p>`, tt.href)
			result := gate.Evaluate(domain.Situation{Body: body})
			want := 0
			if tt.internal {
				want = 1
			}
			assert.Equal(t, want, result.Metrics.InternalLinkCount)
		})
	}
}

func TestQualityGate_EntityLinkExcludesOwnSection(t *testing.T) {
	gate := NewQualityGate(testSiteHost)

	// A place linking only to another place: internal, but not a link to
	// a different entity section.
	samSection := domain.Place{History: `<p><a href="/places/cana">Cana</a></p>`}
	assert.False(t, gate.Evaluate(samSection).Metrics.EntityLinksPresent)

	crossSection := domain.Place{History: `<p><a href="/verses/john-2">John 2</a></p>`}
	assert.True(t, gate.Evaluate(crossSection).Metrics.EntityLinksPresent)
}

func TestQualityGate_DensityPerEntityType(t *testing.T) {
	gate := NewQualityGate(testSiteHost)

	// A verse link is worth 4 to a place but an itinerary needs place
	// links for its top weight.
	verseOnly := `<p><a href="/verses/psalm-121">Psalm 121</a></p>`

	place := domain.Place{History: verseOnly}
	assert.Equal(t, 4, gate.Evaluate(place).Metrics.EntityDensityScore)

	itinerary := domain.Itinerary{RouteNotes: verseOnly}
	assert.Equal(t, 4, gate.Evaluate(itinerary).Metrics.EntityDensityScore)

	full := domain.Itinerary{RouteNotes: `<p>
		<a href="/places/bethlehem">Bethlehem</a>
		<a href="/verses/micah-5">Micah 5</a>
		<a href="/names/david">David</a></p>`}
	assert.Equal(t, 10, gate.Evaluate(full).Metrics.EntityDensityScore)
}

func TestQualityGate_DensityReasonNamesMissingCategories(t *testing.T) {
	gate := NewQualityGate(testSiteHost)

	// Only a name link: weight 2 for itineraries, below the threshold.
	record := domain.Itinerary{RouteNotes: `<p><a href="/names/paul">Paul</a></p>`}
	result := gate.Evaluate(record)

	require.False(t, result.OK)
	found := false
	for _, reason := range result.Reasons {
		if strings.Contains(reason, "missing place, verse links") {
			found = true
		}
	}
	assert.True(t, found, "reasons: %v", result.Reasons)
}

func TestQualityGate_ScriptContentNotCounted(t *testing.T) {
	gate := NewQualityGate(testSiteHost)
	record := domain.Situation{Body: "<script>" + words(500) + "</script><p>" + words(10) + "</p>"}
	assert.Equal(t, 10, gate.Evaluate(record).Metrics.WordCount)
}

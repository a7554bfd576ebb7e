package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/versewell/lumen/internal/core/domain"
	"github.com/versewell/lumen/internal/core/ports/driven"
)

func TestCatalogStore_SaveAndGet(t *testing.T) {
	store := NewCatalogStore()
	ctx := context.Background()

	place := domain.Place{
		RecordMeta: domain.RecordMeta{ID: "p-1", Slug: "jericho", Title: "Jericho"},
		Country:    "Israel",
	}
	require.NoError(t, store.SaveRecord(ctx, place))

	got, err := store.GetRecord(ctx, domain.EntityPlace, "jericho")
	require.NoError(t, err)
	assert.Equal(t, place, got)

	_, err = store.GetRecord(ctx, domain.EntityPlace, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Same slug, different entity type: a distinct record.
	_, err = store.GetRecord(ctx, domain.EntityName, "jericho")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogStore_SaveRecordReplacesBySlug(t *testing.T) {
	store := NewCatalogStore()
	ctx := context.Background()

	require.NoError(t, store.SaveRecord(ctx, domain.Name{
		RecordMeta: domain.RecordMeta{ID: "n-1", Slug: "ruth", Title: "Ruth"},
	}))
	require.NoError(t, store.SaveRecord(ctx, domain.Name{
		RecordMeta: domain.RecordMeta{ID: "n-1", Slug: "ruth", Title: "Ruth the Moabite"},
	}))

	got, err := store.GetRecord(ctx, domain.EntityName, "ruth")
	require.NoError(t, err)
	assert.Equal(t, "Ruth the Moabite", got.Meta().Title)

	items, err := store.ListByType(ctx, domain.EntityName)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCatalogStore_ListByTypeSortsByTitle(t *testing.T) {
	store := NewCatalogStore()
	ctx := context.Background()

	for _, title := range []string{"Zebulun", "Asher", "Manasseh"} {
		require.NoError(t, store.SaveRecord(ctx, domain.Name{
			RecordMeta: domain.RecordMeta{ID: title, Slug: title, Title: title},
		}))
	}

	items, err := store.ListByType(ctx, domain.EntityName)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Asher", items[0].Title)
	assert.Equal(t, "Manasseh", items[1].Title)
	assert.Equal(t, "Zebulun", items[2].Title)
}

func TestCatalogStore_ListByAttributeOrdersAndLimits(t *testing.T) {
	store := NewCatalogStore()
	ctx := context.Background()

	seed := func(id, slug, title string, population int) {
		require.NoError(t, store.SaveRecord(ctx, domain.Place{
			RecordMeta: domain.RecordMeta{ID: id, Slug: slug, Title: title},
			Country:    "Egypt",
			Population: population,
		}))
	}
	seed("p-1", "memphis", "Memphis", 5000)
	seed("p-2", "goshen", "Goshen", 5000)
	seed("p-3", "alexandria", "Alexandria", 90000)
	seed("p-4", "on", "On", 100)

	items, err := store.ListByAttribute(ctx, domain.EntityPlace, driven.AttributeCountry, "egypt", "p-4", 3)
	require.NoError(t, err)

	// Priority descending, title ascending on ties; the excluded record is
	// gone and the limit holds.
	require.Len(t, items, 3)
	assert.Equal(t, "Alexandria", items[0].Title)
	assert.Equal(t, "Goshen", items[1].Title)
	assert.Equal(t, "Memphis", items[2].Title)
}

func TestCatalogStore_PassageJoins(t *testing.T) {
	store := NewCatalogStore()
	ctx := context.Background()

	require.NoError(t, store.SaveRecord(ctx, domain.Place{
		RecordMeta: domain.RecordMeta{ID: "p-1", Slug: "bethel", Title: "Bethel"},
	}))
	require.NoError(t, store.SaveRecord(ctx, domain.Name{
		RecordMeta: domain.RecordMeta{ID: "n-1", Slug: "jacob", Title: "Jacob"},
	}))
	store.SetPassageRefs(domain.EntityPlace, "p-1", []string{"v-1", "v-2"})
	store.SetPassageRefs(domain.EntityName, "n-1", []string{"v-2"})

	refs, err := store.PassageRefs(ctx, domain.EntityPlace, "p-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"v-1", "v-2"}, refs)

	mentions, err := store.ListMentionsOfPassages(ctx, []string{"v-2"}, domain.EntityPlace, "p-1", 5)
	require.NoError(t, err)
	require.Len(t, mentions, 1)
	assert.Equal(t, "Jacob", mentions[0].Title)

	referencing := store.ListReferencing("v-2")
	require.Len(t, referencing, 2)
	assert.Equal(t, "Bethel", referencing[0].Title)
	assert.Equal(t, "Jacob", referencing[1].Title)
}

func TestCatalogStore_SearchKeywords(t *testing.T) {
	store := NewCatalogStore()
	ctx := context.Background()

	require.NoError(t, store.SaveRecord(ctx, domain.Situation{
		RecordMeta: domain.RecordMeta{ID: "s-1", Slug: "fear", Title: "Fear of the Unknown", Category: "Anxiety"},
	}))
	require.NoError(t, store.SaveRecord(ctx, domain.Situation{
		RecordMeta: domain.RecordMeta{ID: "s-2", Slug: "doubt", Title: "Doubt", Category: "Faith"},
	}))

	items, err := store.SearchKeywords(ctx, []string{"anxiety"}, "", 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "s-1", items[0].ID)

	// The excluded record never comes back, even on a match.
	items, err = store.SearchKeywords(ctx, []string{"anxiety"}, "s-1", 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}

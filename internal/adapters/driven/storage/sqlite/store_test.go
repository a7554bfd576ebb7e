package sqlite

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/versewell/lumen/internal/core/domain"
	"github.com/versewell/lumen/internal/core/ports/driven"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "lumen-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

func TestNewStore_RunsMigrations(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	var version int
	row := store.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	require.NoError(t, row.Scan(&version))
	assert.GreaterOrEqual(t, version, 1)
	assert.NotEmpty(t, store.Path())
}

func TestNewStore_MigrationsAreIdempotent(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "lumen-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	first, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	// Reopening the same database must not re-run applied migrations.
	second, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, second.Close())
}

func TestCatalogStore_RoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	catalog := store.CatalogStore()
	ctx := context.Background()

	updated := time.Date(2026, 2, 14, 8, 0, 0, 0, time.UTC)
	place := domain.Place{
		RecordMeta: domain.RecordMeta{
			ID:        "p-1",
			Slug:      "capernaum",
			Title:     "Capernaum",
			Category:  "Galilee Towns",
			Region:    "Galilee",
			Status:    domain.StatusPublished,
			UpdatedAt: updated,
		},
		Description: "A fishing town on the north shore.",
		History:     "<p>Base of the early ministry.</p>",
		Country:     "Israel",
		Population:  1500,
	}
	require.NoError(t, catalog.SaveRecord(ctx, place))

	got, err := catalog.GetRecord(ctx, domain.EntityPlace, "capernaum")
	require.NoError(t, err)
	gotPlace, ok := got.(domain.Place)
	require.True(t, ok)
	assert.Equal(t, "Capernaum", gotPlace.Title)
	assert.Equal(t, "Israel", gotPlace.Country)
	assert.Equal(t, 1500, gotPlace.Population)
	assert.Equal(t, "<p>Base of the early ministry.</p>", gotPlace.History)
	assert.True(t, gotPlace.UpdatedAt.Equal(updated))

	_, err = catalog.GetRecord(ctx, domain.EntityPlace, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogStore_SaveAssignsID(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	catalog := store.CatalogStore()
	ctx := context.Background()

	require.NoError(t, catalog.SaveRecord(ctx, domain.Name{
		RecordMeta: domain.RecordMeta{Slug: "deborah", Title: "Deborah"},
	}))

	got, err := catalog.GetRecord(ctx, domain.EntityName, "deborah")
	require.NoError(t, err)
	assert.NotEmpty(t, got.Meta().ID)
}

func TestCatalogStore_ListByAttributeNormalized(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	catalog := store.CatalogStore()
	ctx := context.Background()

	seed := func(id, slug, title, country string, population int) {
		require.NoError(t, catalog.SaveRecord(ctx, domain.Place{
			RecordMeta: domain.RecordMeta{ID: id, Slug: slug, Title: title},
			Country:    country,
			Population: population,
		}))
	}
	// Country values differ in case but normalize to the same key.
	seed("p-1", "tyre", "Tyre", "Lebanon", 20000)
	seed("p-2", "sidon", "Sidon", "lebanon", 30000)
	seed("p-3", "byblos", "Byblos", "LEBANON", 10000)

	items, err := catalog.ListByAttribute(ctx, domain.EntityPlace, driven.AttributeCountry, "lebanon", "p-3", 5)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "Sidon", items[0].Title)
	assert.Equal(t, "Tyre", items[1].Title)
}

func TestCatalogStore_PassageJoins(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	catalog := store.CatalogStore()
	ctx := context.Background()

	require.NoError(t, catalog.SaveRecord(ctx, domain.Place{
		RecordMeta: domain.RecordMeta{ID: "p-1", Slug: "emmaus", Title: "Emmaus"},
	}))
	require.NoError(t, catalog.SaveRecord(ctx, domain.Situation{
		RecordMeta: domain.RecordMeta{ID: "s-1", Slug: "discouragement", Title: "Discouragement"},
	}))
	require.NoError(t, catalog.SetPassageRefs(ctx, domain.EntityPlace, "p-1", []string{"v-1", "v-2"}))
	require.NoError(t, catalog.SetPassageRefs(ctx, domain.EntitySituation, "s-1", []string{"v-2"}))

	refs, err := catalog.PassageRefs(ctx, domain.EntityPlace, "p-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"v-1", "v-2"}, refs)

	mentions, err := catalog.ListMentionsOfPassages(ctx, []string{"v-1", "v-2"}, domain.EntityPlace, "p-1", 5)
	require.NoError(t, err)
	require.Len(t, mentions, 1)
	assert.Equal(t, "Discouragement", mentions[0].Title)

	// Replacing the refs drops the old join rows.
	require.NoError(t, catalog.SetPassageRefs(ctx, domain.EntitySituation, "s-1", []string{"v-9"}))
	mentions, err = catalog.ListMentionsOfPassages(ctx, []string{"v-2"}, domain.EntityPlace, "p-1", 5)
	require.NoError(t, err)
	assert.Empty(t, mentions)
}

func TestCatalogStore_SearchKeywords(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	catalog := store.CatalogStore()
	ctx := context.Background()

	require.NoError(t, catalog.SaveRecord(ctx, domain.Profession{
		RecordMeta:  domain.RecordMeta{ID: "pr-1", Slug: "fisherman", Title: "Fisherman", Category: "Trades"},
		Description: "Casting nets on the lake.",
	}))

	items, err := catalog.SearchKeywords(ctx, []string{"FISHERMAN"}, "", 5)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "pr-1", items[0].ID)

	items, err = catalog.SearchKeywords(ctx, []string{"fisherman"}, "pr-1", 5)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPassageStore_RoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	passages := store.PassageStore()
	ctx := context.Background()

	updated := time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, passages.SavePassage(ctx, domain.Passage{
		ID:             "v-1",
		Slug:           "luke-24-13",
		Reference:      "Luke 24:13",
		Text:           "Two of them were going to a village called Emmaus",
		EmbeddingModel: "mini-lm-v2",
		UpdatedAt:      updated,
	}))

	stamp, err := passages.GetStamp(ctx, "v-1")
	require.NoError(t, err)
	assert.Equal(t, "mini-lm-v2", stamp.EmbeddingModel)
	assert.True(t, stamp.UpdatedAt.Equal(updated))

	passage, err := passages.GetPassage(ctx, "v-1")
	require.NoError(t, err)
	assert.Equal(t, "Luke 24:13", passage.Reference)

	_, err = passages.GetStamp(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEmbeddingStore_RoundTripAndRecency(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	embeddings := store.EmbeddingStore()
	ctx := context.Background()

	vector := []float64{0.25, -0.5, 1.0}
	require.NoError(t, embeddings.SaveEmbedding(ctx, domain.EmbeddingVector{
		PassageID:   "v-1",
		Model:       "m1",
		Dims:        3,
		Vector:      vector,
		ContentHash: "abc123",
	}))
	require.NoError(t, embeddings.SaveEmbedding(ctx, domain.EmbeddingVector{
		PassageID: "v-2", Model: "m1", Dims: 3, Vector: []float64{1, 0, 0},
	}))
	require.NoError(t, embeddings.SaveEmbedding(ctx, domain.EmbeddingVector{
		PassageID: "v-3", Model: "m2", Dims: 3, Vector: []float64{0, 1, 0},
	}))

	got, err := embeddings.GetEmbedding(ctx, "v-1", "m1")
	require.NoError(t, err)
	assert.Equal(t, vector, got.Vector)
	assert.Equal(t, "abc123", got.ContentHash)

	_, err = embeddings.GetEmbedding(ctx, "v-1", "m2")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Only the matching model's vectors come back, excluding the subject.
	recent, err := embeddings.ListRecent(ctx, "m1", 10, "v-1")
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "v-2", recent[0].PassageID)
}

package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/versewell/lumen/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/versewell/lumen/internal/core/domain"
	"github.com/versewell/lumen/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to all
// driven storage ports through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.lumen/data/catalog.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".lumen", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "catalog.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// CatalogStore returns a CatalogStore interface backed by this store.
func (s *Store) CatalogStore() *CatalogStore {
	return &CatalogStore{store: s}
}

// PassageStore returns a PassageStore interface backed by this store.
func (s *Store) PassageStore() *PassageStore {
	return &PassageStore{store: s}
}

// EmbeddingStore returns an EmbeddingStore interface backed by this store.
func (s *Store) EmbeddingStore() *EmbeddingStore {
	return &EmbeddingStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Catalog Store ====================

// CatalogStore implements driven.CatalogStore over the records and
// passage_refs tables. It also exposes the write methods used when seeding.
type CatalogStore struct {
	store *Store
}

var _ driven.CatalogStore = (*CatalogStore)(nil)

const recordColumns = `id, entity_type, slug, title, category, region, country,
	status, priority, plain, markup, updated_at`

// SaveRecord stores or updates a record, assigning an ID when absent.
func (s *CatalogStore) SaveRecord(ctx context.Context, record domain.Record) error {
	row := flattenRecord(record)
	if row.id == "" {
		row.id = uuid.NewString()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO records
			(id, entity_type, slug, title,
			 category, category_slug, region, region_slug, country, country_slug,
			 status, priority, plain, markup, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(entity_type, slug) DO UPDATE SET
			title = excluded.title,
			category = excluded.category,
			category_slug = excluded.category_slug,
			region = excluded.region,
			region_slug = excluded.region_slug,
			country = excluded.country,
			country_slug = excluded.country_slug,
			status = excluded.status,
			priority = excluded.priority,
			plain = excluded.plain,
			markup = excluded.markup,
			updated_at = excluded.updated_at
	`, row.id, row.entityType, row.slug, row.title,
		row.category, domain.NormalizeSlug(row.category),
		row.region, domain.NormalizeSlug(row.region),
		row.country, domain.NormalizeSlug(row.country),
		row.status, row.priority, row.plain, row.markup, row.updatedAt)

	if err != nil {
		return fmt.Errorf("saving record: %w", err)
	}
	return nil
}

// SetPassageRefs replaces the passage references for a record.
func (s *CatalogStore) SetPassageRefs(ctx context.Context, entityType domain.EntityType, recordID string, passageIDs []string) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM passage_refs WHERE entity_type = ? AND record_id = ?",
		string(entityType), recordID); err != nil {
		return fmt.Errorf("clearing passage refs: %w", err)
	}

	for _, passageID := range passageIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO passage_refs (entity_type, record_id, passage_id)
			VALUES (?, ?, ?)
		`, string(entityType), recordID, passageID); err != nil {
			return fmt.Errorf("saving passage ref: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetRecord retrieves a record by entity type and slug.
func (s *CatalogStore) GetRecord(ctx context.Context, entityType domain.EntityType, slug string) (domain.Record, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM records WHERE entity_type = ? AND slug = ?
	`, string(entityType), slug)

	var rr recordRow
	if err := rr.scan(row.Scan); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning record: %w", err)
	}
	return buildRecord(rr)
}

// ListByType returns summaries of all records of one type, title ascending.
func (s *CatalogStore) ListByType(ctx context.Context, entityType domain.EntityType) ([]domain.RecordSummary, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM records WHERE entity_type = ?
		ORDER BY title
	`, string(entityType))
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// ListByAttribute returns same-type summaries sharing a normalized attribute
// value, priority descending then title ascending.
func (s *CatalogStore) ListByAttribute(ctx context.Context, entityType domain.EntityType, attr driven.Attribute, value, excludeID string, limit int) ([]domain.RecordSummary, error) {
	column, err := attributeColumn(attr)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM records
		WHERE entity_type = ? AND `+column+` = ? AND id <> ?
		ORDER BY priority DESC, title ASC
		LIMIT ?
	`, string(entityType), value, excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying records by attribute: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// PassageRefs returns the passage IDs a record references.
func (s *CatalogStore) PassageRefs(ctx context.Context, entityType domain.EntityType, recordID string) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT passage_id FROM passage_refs
		WHERE entity_type = ? AND record_id = ?
		ORDER BY rowid
	`, string(entityType), recordID)
	if err != nil {
		return nil, fmt.Errorf("querying passage refs: %w", err)
	}
	defer rows.Close()

	var refs []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning passage ref: %w", err)
		}
		refs = append(refs, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating passage refs: %w", err)
	}
	return refs, nil
}

// ListMentionsOfPassages returns records referencing any of the passages,
// excluding one entity type and one record.
func (s *CatalogStore) ListMentionsOfPassages(ctx context.Context, passageIDs []string, excludeType domain.EntityType, excludeID string, limit int) ([]domain.RecordSummary, error) {
	if len(passageIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(passageIDs))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, 0, len(passageIDs)+3)
	for _, id := range passageIDs {
		args = append(args, id)
	}
	args = append(args, string(excludeType), excludeID, limit)

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT r.id, r.entity_type, r.slug, r.title, r.category, r.region,
			r.country, r.status, r.priority, r.plain, r.markup, r.updated_at
		FROM records r
		JOIN passage_refs pr ON pr.entity_type = r.entity_type AND pr.record_id = r.id
		WHERE pr.passage_id IN (`+placeholders+`)
			AND r.entity_type <> ? AND r.id <> ?
		GROUP BY r.id
		ORDER BY MIN(r.rowid)
		LIMIT ?
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying passage mentions: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// SearchKeywords returns records whose title or category contains any
// keyword case-insensitively.
func (s *CatalogStore) SearchKeywords(ctx context.Context, keywords []string, excludeID string, limit int) ([]domain.RecordSummary, error) {
	if len(keywords) == 0 {
		return nil, nil
	}

	conditions := make([]string, 0, len(keywords))
	args := []any{excludeID}
	for _, kw := range keywords {
		kw = strings.TrimSpace(strings.ToLower(kw))
		if kw == "" {
			continue
		}
		conditions = append(conditions, "instr(lower(title || ' ' || category), ?) > 0")
		args = append(args, kw)
	}
	if len(conditions) == 0 {
		return nil, nil
	}
	args = append(args, limit)

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM records
		WHERE id <> ? AND (`+strings.Join(conditions, " OR ")+`)
		ORDER BY rowid
		LIMIT ?
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying records by keyword: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// ==================== Passage Store ====================

// PassageStore implements driven.PassageStore over the passages table.
type PassageStore struct {
	store *Store
}

var _ driven.PassageStore = (*PassageStore)(nil)

// SavePassage stores or updates a passage, assigning an ID when absent.
func (s *PassageStore) SavePassage(ctx context.Context, p domain.Passage) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO passages (id, slug, reference, text, embedding_model, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			slug = excluded.slug,
			reference = excluded.reference,
			text = excluded.text,
			embedding_model = excluded.embedding_model,
			updated_at = excluded.updated_at
	`, p.ID, p.Slug, p.Reference, p.Text, p.EmbeddingModel, p.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving passage: %w", err)
	}
	return nil
}

// GetStamp retrieves the staleness projection for a passage.
func (s *PassageStore) GetStamp(ctx context.Context, passageID string) (driven.PassageStamp, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT updated_at, embedding_model FROM passages WHERE id = ?
	`, passageID)

	var updatedAt sql.NullTime
	var model string
	if err := row.Scan(&updatedAt, &model); err != nil {
		if err == sql.ErrNoRows {
			return driven.PassageStamp{}, domain.ErrNotFound
		}
		return driven.PassageStamp{}, fmt.Errorf("scanning passage stamp: %w", err)
	}

	stamp := driven.PassageStamp{EmbeddingModel: model}
	if updatedAt.Valid {
		stamp.UpdatedAt = updatedAt.Time
	}
	return stamp, nil
}

// GetPassage retrieves a passage by ID.
func (s *PassageStore) GetPassage(ctx context.Context, passageID string) (*domain.Passage, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, slug, reference, text, embedding_model, updated_at
		FROM passages WHERE id = ?
	`, passageID)

	var p domain.Passage
	var updatedAt sql.NullTime
	if err := row.Scan(&p.ID, &p.Slug, &p.Reference, &p.Text, &p.EmbeddingModel, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning passage: %w", err)
	}
	if updatedAt.Valid {
		p.UpdatedAt = updatedAt.Time
	}
	return &p, nil
}

// ListMentions returns summaries of records referencing the passage.
func (s *PassageStore) ListMentions(ctx context.Context, passageID string) ([]domain.RecordSummary, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT r.id, r.entity_type, r.slug, r.title, r.category, r.region,
			r.country, r.status, r.priority, r.plain, r.markup, r.updated_at
		FROM records r
		JOIN passage_refs pr ON pr.entity_type = r.entity_type AND pr.record_id = r.id
		WHERE pr.passage_id = ?
		ORDER BY r.rowid
	`, passageID)
	if err != nil {
		return nil, fmt.Errorf("querying mentions: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// ==================== Embedding Store ====================

// EmbeddingStore implements driven.EmbeddingStore over the embeddings table.
type EmbeddingStore struct {
	store *Store
}

var _ driven.EmbeddingStore = (*EmbeddingStore)(nil)

// SaveEmbedding stores or updates a vector, refreshing its indexing time.
func (s *EmbeddingStore) SaveEmbedding(ctx context.Context, v domain.EmbeddingVector) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO embeddings (passage_id, model, dims, vector, content_hash, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(passage_id, model) DO UPDATE SET
			dims = excluded.dims,
			vector = excluded.vector,
			content_hash = excluded.content_hash,
			indexed_at = excluded.indexed_at
	`, v.PassageID, v.Model, v.Dims, float64SliceToBytes(v.Vector),
		v.ContentHash, time.Now().UTC())

	if err != nil {
		return fmt.Errorf("saving embedding: %w", err)
	}
	return nil
}

// GetEmbedding retrieves the vector for a passage under a model.
func (s *EmbeddingStore) GetEmbedding(ctx context.Context, passageID, model string) (*domain.EmbeddingVector, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT passage_id, model, dims, vector, content_hash
		FROM embeddings WHERE passage_id = ? AND model = ?
	`, passageID, model)

	var v domain.EmbeddingVector
	var blob []byte
	if err := row.Scan(&v.PassageID, &v.Model, &v.Dims, &blob, &v.ContentHash); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning embedding: %w", err)
	}
	v.Vector = bytesToFloat64Slice(blob)
	return &v, nil
}

// ListRecent returns up to limit vectors for a model, most recently indexed
// first, excluding excludeID.
func (s *EmbeddingStore) ListRecent(ctx context.Context, model string, limit int, excludeID string) ([]domain.EmbeddingVector, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT passage_id, model, dims, vector, content_hash
		FROM embeddings
		WHERE model = ? AND passage_id <> ?
		ORDER BY indexed_at DESC, rowid DESC
		LIMIT ?
	`, model, excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying embeddings: %w", err)
	}
	defer rows.Close()

	var vectors []domain.EmbeddingVector //nolint:prealloc // size unknown from query
	for rows.Next() {
		var v domain.EmbeddingVector
		var blob []byte
		if err := rows.Scan(&v.PassageID, &v.Model, &v.Dims, &blob, &v.ContentHash); err != nil {
			return nil, fmt.Errorf("scanning embedding: %w", err)
		}
		v.Vector = bytesToFloat64Slice(blob)
		vectors = append(vectors, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating embeddings: %w", err)
	}
	return vectors, nil
}

// ==================== Helper Functions ====================

// recordRow is the flat relational shape of a record.
type recordRow struct {
	id         string
	entityType string
	slug       string
	title      string
	category   string
	region     string
	country    string
	status     string
	priority   int
	plain      string
	markup     string
	updatedAt  sql.NullTime
}

func (r *recordRow) scan(scan func(dest ...any) error) error {
	return scan(&r.id, &r.entityType, &r.slug, &r.title, &r.category, &r.region,
		&r.country, &r.status, &r.priority, &r.plain, &r.markup, &r.updatedAt)
}

// flattenRecord projects a record variant onto its relational shape.
func flattenRecord(record domain.Record) recordRow {
	meta := record.Meta()
	row := recordRow{
		id:         meta.ID,
		entityType: string(record.EntityType()),
		slug:       meta.Slug,
		title:      meta.Title,
		category:   meta.Category,
		region:     meta.Region,
		status:     string(meta.Status),
	}
	if row.status == "" {
		row.status = string(domain.StatusDraft)
	}
	if !meta.UpdatedAt.IsZero() {
		row.updatedAt = sql.NullTime{Time: meta.UpdatedAt.UTC(), Valid: true}
	}
	if fields := record.PlainFields(); len(fields) > 0 {
		row.plain = fields[0]
	}
	if fields := record.MarkupFields(); len(fields) > 0 {
		row.markup = fields[0]
	}
	if place, ok := record.(domain.Place); ok {
		row.country = place.Country
		row.priority = place.Population
	}
	return row
}

// buildRecord reconstructs the record variant from its relational shape.
func buildRecord(row recordRow) (domain.Record, error) {
	meta := domain.RecordMeta{
		ID:       row.id,
		Slug:     row.slug,
		Title:    row.title,
		Category: row.category,
		Region:   row.region,
		Status:   domain.Status(row.status),
	}
	if row.updatedAt.Valid {
		meta.UpdatedAt = row.updatedAt.Time
	}

	switch domain.EntityType(row.entityType) {
	case domain.EntityPlace:
		return domain.Place{
			RecordMeta:  meta,
			Description: row.plain,
			History:     row.markup,
			Country:     row.country,
			Population:  row.priority,
		}, nil
	case domain.EntitySituation:
		return domain.Situation{RecordMeta: meta, Summary: row.plain, Body: row.markup}, nil
	case domain.EntityProfession:
		return domain.Profession{RecordMeta: meta, Description: row.plain, ScriptureContext: row.markup}, nil
	case domain.EntityPrayerPoint:
		return domain.PrayerPoint{RecordMeta: meta, Intro: row.plain, Body: row.markup}, nil
	case domain.EntityName:
		return domain.Name{RecordMeta: meta, Meaning: row.plain, Story: row.markup}, nil
	case domain.EntityItinerary:
		return domain.Itinerary{RecordMeta: meta, Overview: row.plain, RouteNotes: row.markup}, nil
	}
	return nil, fmt.Errorf("record %s: %w", row.id, domain.ErrUnknownEntityType)
}

// scanSummaries scans record rows into catalog summaries.
func scanSummaries(rows *sql.Rows) ([]domain.RecordSummary, error) {
	var summaries []domain.RecordSummary //nolint:prealloc // size unknown from query
	for rows.Next() {
		var rr recordRow
		if err := rr.scan(rows.Scan); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		record, err := buildRecord(rr)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, domain.Summarize(record))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return summaries, nil
}

// attributeColumn maps an attribute to its normalized column.
func attributeColumn(attr driven.Attribute) (string, error) {
	switch attr {
	case driven.AttributeCategory:
		return "category_slug", nil
	case driven.AttributeRegion:
		return "region_slug", nil
	case driven.AttributeCountry:
		return "country_slug", nil
	}
	return "", fmt.Errorf("attribute %q: %w", attr, domain.ErrInvalidInput)
}

// float64SliceToBytes converts a []float64 to a byte slice for storage.
func float64SliceToBytes(floats []float64) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*8)
	for i, f := range floats {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(f))
	}
	return buf
}

// bytesToFloat64Slice converts a byte slice back to []float64.
func bytesToFloat64Slice(data []byte) []float64 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float64, len(data)/8)
	for i := range floats {
		floats[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:]))
	}
	return floats
}

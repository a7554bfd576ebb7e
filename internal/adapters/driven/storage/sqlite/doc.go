// Package sqlite provides a unified SQLite-based implementation of the
// driven storage ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. It implements multiple
// store interfaces through a single database connection:
//
//   - CatalogStore: entity records and passage-reference joins
//   - PassageStore: scripture passage snapshots and staleness stamps
//   - EmbeddingStore: embedding vectors for semantic similarity
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files.
//
// # Data Location
//
// By default, the database is stored at ~/.lumen/data/catalog.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite

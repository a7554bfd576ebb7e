// Package driven defines the interfaces that core calls OUT to
// infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CatalogStore: read-only typed projections over the content catalog
//   - PassageStore: scripture passage snapshots and cheap staleness stamps
//   - EmbeddingStore: embedding vectors keyed by passage and model
//   - IntelCache: per-process TTL cache for intelligence payloads
//
// # Optional Interfaces
//
// These can be nil - the engine degrades gracefully:
//
//   - LabelSource: editorial category label overrides. Without it, the
//     built-in label table and slug title-casing apply.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven

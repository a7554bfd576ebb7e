// Package domain defines the core business entities for Lumen.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Record: a catalog content record (one of six entity variants)
//   - QualityResult: the publish-gate verdict for a record
//   - RelatedLink: a ranked cross-reference to another record
//   - BreadcrumbItem / CategoryGroup: navigation building blocks
//   - EmbeddingVector / SemanticMatch: semantic similarity primitives
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

// Package domain defines the core business entities for the corpus CLI.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SourceDocument: A file discovered during an ingestion walk
//   - Chunk: A bounded, overlapping slice of a document's extracted text
//   - Record: The wire representation of a chunk sent to the collection backend
//   - SearchHit: A ranked result returned from the backend
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

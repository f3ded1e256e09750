// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Extractor: Converts a file on disk into plain text
//   - Splitter: Splits extracted text into overlapping chunks
//   - CollectionStore: Collection lifecycle, batch upserts and search
//     against the remote backend
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - VectorQuerier: Similarity search driven by a raw embedding vector.
//     Only needed by callers that compute query embeddings themselves.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven

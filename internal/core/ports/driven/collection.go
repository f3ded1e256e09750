package driven

import (
	"context"

	"github.com/custodia-labs/corpus-cli/internal/core/domain"
)

// CollectionStore is the capability the core requires of the remote
// collection backend. The backend embeds and indexes the text field of
// each record itself; callers never supply vectors on the write path.
//
// Error contract (matches the ingestion pipeline's failure semantics):
// read operations (Exists, Search*) degrade to empty results on backend
// failure, write operations (Create, Drop, Upsert, DeleteByIDs) return
// the failure to the caller.
type CollectionStore interface {
	// Exists probes for a collection. It never fails: a missing
	// collection and an unreachable backend both report false.
	Exists(ctx context.Context, name string) bool

	// Create creates a named collection.
	Create(ctx context.Context, name string) error

	// Drop deletes a collection and everything in it.
	Drop(ctx context.Context, name string) error

	// Upsert inserts or replaces records by ID. Safe to call repeatedly
	// with the same ids. Records without an ID are rejected with
	// domain.ErrMissingID before anything is transmitted.
	Upsert(ctx context.Context, name string, records []domain.Record) error

	// DeleteByIDs removes specific records.
	DeleteByIDs(ctx context.Context, name string, ids []string) error

	// SearchByText runs a similarity search with a text query.
	// Backend failures degrade to an empty hit list.
	SearchByText(ctx context.Context, name, query string, opts domain.SearchOptions) []domain.SearchHit

	// SearchByFilter returns documents matching equality constraints,
	// without relevance ranking. Backend failures degrade to empty.
	SearchByFilter(ctx context.Context, name string, filter domain.Filter, limit int) []domain.SearchHit
}

// VectorQuerier answers similarity queries posed as raw embedding vectors
// against a backend whose native query interface only accepts text or
// document references. Implementations approximate vector search; see the
// marqo adapter for the document-proxy protocol.
type VectorQuerier interface {
	// SearchByVectors runs one similarity search per input vector,
	// returning one ranked hit list per vector. A failed query yields
	// an empty list in its slot without aborting the others.
	SearchByVectors(ctx context.Context, name string, vectors [][]float32, limit int) [][]domain.SearchHit
}

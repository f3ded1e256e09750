package driving

import (
	"context"

	"github.com/custodia-labs/corpus-cli/internal/core/domain"
)

// Searcher answers retrieval queries against a collection.
type Searcher interface {
	// Search runs a text similarity search.
	// Backend failures degrade to an empty result, never an error.
	Search(ctx context.Context, collection, query string, opts domain.SearchOptions) []domain.SearchHit

	// Get returns documents matching equality constraints, without
	// relevance ranking. An empty filter returns everything up to limit.
	Get(ctx context.Context, collection string, filter domain.Filter, limit int) []domain.SearchHit

	// SearchVectors runs one similarity search per raw query vector.
	SearchVectors(ctx context.Context, collection string, vectors [][]float32, limit int) [][]domain.SearchHit
}

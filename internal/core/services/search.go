package services

import (
	"context"

	"github.com/custodia-labs/corpus-cli/internal/core/domain"
	"github.com/custodia-labs/corpus-cli/internal/core/ports/driven"
	"github.com/custodia-labs/corpus-cli/internal/core/ports/driving"
	"github.com/custodia-labs/corpus-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.Searcher = (*SearchService)(nil)

// SearchService answers retrieval queries against the collection
// backend. All backend read failures degrade to empty results inside the
// store adapter; callers treat an empty result identically to "no data".
type SearchService struct {
	store   driven.CollectionStore
	querier driven.VectorQuerier
}

// NewSearchService creates a search service. The querier is optional;
// without it, vector queries return empty results.
func NewSearchService(store driven.CollectionStore, querier driven.VectorQuerier) *SearchService {
	return &SearchService{
		store:   store,
		querier: querier,
	}
}

// Search runs a text similarity search against a collection.
func (s *SearchService) Search(ctx context.Context, collection, query string, opts domain.SearchOptions) []domain.SearchHit {
	if collection == "" {
		collection = DefaultCollection
	}
	if opts.Limit <= 0 {
		opts.Limit = domain.DefaultSearchLimit
	}
	return s.store.SearchByText(ctx, collection, query, opts)
}

// Get returns documents matching equality constraints without ranking.
func (s *SearchService) Get(ctx context.Context, collection string, filter domain.Filter, limit int) []domain.SearchHit {
	if collection == "" {
		collection = DefaultCollection
	}
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}
	return s.store.SearchByFilter(ctx, collection, filter, limit)
}

// SearchVectors runs one similarity search per raw query vector.
func (s *SearchService) SearchVectors(ctx context.Context, collection string, vectors [][]float32, limit int) [][]domain.SearchHit {
	if s.querier == nil {
		logger.Warn("vector querier not configured, returning empty results")
		return make([][]domain.SearchHit, len(vectors))
	}
	if collection == "" {
		collection = DefaultCollection
	}
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}
	return s.querier.SearchByVectors(ctx, collection, vectors, limit)
}

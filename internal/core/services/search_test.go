package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/corpus-cli/internal/core/domain"
)

// recordingStore captures search calls.
type recordingStore struct {
	mockStore
	lastQuery string
	lastOpts  domain.SearchOptions
	hits      []domain.SearchHit
}

func (r *recordingStore) SearchByText(_ context.Context, _, query string, opts domain.SearchOptions) []domain.SearchHit {
	r.lastQuery = query
	r.lastOpts = opts
	return r.hits
}

func (r *recordingStore) SearchByFilter(_ context.Context, _ string, _ domain.Filter, limit int) []domain.SearchHit {
	r.lastOpts = domain.SearchOptions{Limit: limit}
	return r.hits
}

// stubQuerier returns canned per-vector results.
type stubQuerier struct {
	results [][]domain.SearchHit
}

func (s *stubQuerier) SearchByVectors(_ context.Context, _ string, vectors [][]float32, _ int) [][]domain.SearchHit {
	if s.results != nil {
		return s.results
	}
	return make([][]domain.SearchHit, len(vectors))
}

func TestSearch_AppliesDefaultLimit(t *testing.T) {
	store := &recordingStore{hits: []domain.SearchHit{{ID: "a"}}}
	svc := NewSearchService(store, nil)

	hits := svc.Search(context.Background(), "docs", "query", domain.SearchOptions{})

	require.Len(t, hits, 1)
	assert.Equal(t, "query", store.lastQuery)
	assert.Equal(t, domain.DefaultSearchLimit, store.lastOpts.Limit)
}

func TestSearch_EmptyResultIsNotAnError(t *testing.T) {
	store := &recordingStore{}
	svc := NewSearchService(store, nil)

	hits := svc.Search(context.Background(), "docs", "query", domain.SearchOptions{Limit: 3})

	assert.Empty(t, hits)
	assert.Equal(t, 3, store.lastOpts.Limit)
}

func TestGet_UsesFilterSearch(t *testing.T) {
	store := &recordingStore{hits: []domain.SearchHit{{ID: "x"}}}
	svc := NewSearchService(store, nil)

	hits := svc.Get(context.Background(), "docs", domain.Filter{"file_name": "a.txt"}, 0)

	require.Len(t, hits, 1)
	assert.Equal(t, domain.DefaultSearchLimit, store.lastOpts.Limit)
}

func TestSearchVectors_WithoutQuerier(t *testing.T) {
	svc := NewSearchService(&recordingStore{}, nil)

	results := svc.SearchVectors(context.Background(), "docs", [][]float32{{0.1}, {0.2}}, 5)

	require.Len(t, results, 2)
	assert.Empty(t, results[0])
	assert.Empty(t, results[1])
}

func TestSearchVectors_DelegatesToQuerier(t *testing.T) {
	querier := &stubQuerier{results: [][]domain.SearchHit{{{ID: "hit"}}}}
	svc := NewSearchService(&recordingStore{}, querier)

	results := svc.SearchVectors(context.Background(), "docs", [][]float32{{0.1}}, 5)

	require.Len(t, results, 1)
	assert.Equal(t, "hit", results[0][0].ID)
}

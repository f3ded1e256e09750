package cli

import (
	"context"
	"errors"

	"github.com/custodia-labs/corpus-cli/internal/core/domain"
	"github.com/custodia-labs/corpus-cli/internal/core/ports/driving"
)

// mockIngestor records the options it was called with.
type mockIngestor struct {
	lastOpts  driving.IngestOptions
	lastVault bool
	report    driving.IngestReport
	err       error
}

func (m *mockIngestor) IngestDirectory(_ context.Context, opts driving.IngestOptions) (*driving.IngestReport, error) {
	m.lastOpts = opts
	m.lastVault = false
	if m.err != nil {
		return nil, m.err
	}
	report := m.report
	return &report, nil
}

func (m *mockIngestor) IngestVault(_ context.Context, opts driving.IngestOptions) (*driving.IngestReport, error) {
	m.lastOpts = opts
	m.lastVault = true
	if m.err != nil {
		return nil, m.err
	}
	report := m.report
	return &report, nil
}

// mockSearcher returns canned hits and records the last query.
type mockSearcher struct {
	lastCollection string
	lastQuery      string
	lastOpts       domain.SearchOptions
	lastFilter     domain.Filter
	hits           []domain.SearchHit
}

func (m *mockSearcher) Search(_ context.Context, collection, query string, opts domain.SearchOptions) []domain.SearchHit {
	m.lastCollection = collection
	m.lastQuery = query
	m.lastOpts = opts
	return m.hits
}

func (m *mockSearcher) Get(_ context.Context, collection string, filter domain.Filter, limit int) []domain.SearchHit {
	m.lastCollection = collection
	m.lastFilter = filter
	m.lastOpts = domain.SearchOptions{Limit: limit}
	return m.hits
}

func (m *mockSearcher) SearchVectors(_ context.Context, _ string, vectors [][]float32, _ int) [][]domain.SearchHit {
	results := make([][]domain.SearchHit, len(vectors))
	for i := range vectors {
		results[i] = m.hits
	}
	return results
}

// mockCollections is a store double for the collection commands.
type mockCollections struct {
	existing map[string]bool
	dropped  []string
	dropErr  error
}

func (m *mockCollections) Exists(_ context.Context, name string) bool { return m.existing[name] }
func (m *mockCollections) Create(_ context.Context, name string) error {
	m.existing[name] = true
	return nil
}
func (m *mockCollections) Drop(_ context.Context, name string) error {
	if m.dropErr != nil {
		return m.dropErr
	}
	delete(m.existing, name)
	m.dropped = append(m.dropped, name)
	return nil
}
func (m *mockCollections) Upsert(_ context.Context, _ string, _ []domain.Record) error { return nil }
func (m *mockCollections) DeleteByIDs(_ context.Context, _ string, _ []string) error   { return nil }
func (m *mockCollections) SearchByText(_ context.Context, _, _ string, _ domain.SearchOptions) []domain.SearchHit {
	return nil
}
func (m *mockCollections) SearchByFilter(_ context.Context, _ string, _ domain.Filter, _ int) []domain.SearchHit {
	return nil
}

var errMockFailure = errors.New("mock failure")

// setupTestServices swaps the package services for mocks and returns
// the mocks plus a cleanup restoring the previous wiring.
func setupTestServices() (*mockIngestor, *mockSearcher, *mockCollections, func()) {
	oldIngest := ingestService
	oldSearch := searchService
	oldStore := collectionStore

	ingestor := &mockIngestor{
		report: driving.IngestReport{ChunksSynced: 4, FilesProcessed: 2},
	}
	searcher := &mockSearcher{
		hits: []domain.SearchHit{
			{
				ID:    "f1_chunk_0",
				Score: 0.91,
				Text:  "first matching chunk",
				Metadata: map[string]any{
					"file_path": "notes/a.md",
				},
			},
		},
	}
	store := &mockCollections{existing: map[string]bool{"local-documents": true}}

	ingestService = ingestor
	searchService = searcher
	collectionStore = store

	return ingestor, searcher, store, func() {
		ingestService = oldIngest
		searchService = oldSearch
		collectionStore = oldStore
	}
}

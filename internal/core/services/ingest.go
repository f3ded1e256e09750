package services

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/corpus-cli/internal/contentid"
	"github.com/custodia-labs/corpus-cli/internal/core/domain"
	"github.com/custodia-labs/corpus-cli/internal/core/ports/driven"
	"github.com/custodia-labs/corpus-cli/internal/core/ports/driving"
	"github.com/custodia-labs/corpus-cli/internal/logger"
	"github.com/custodia-labs/corpus-cli/internal/vault"
)

// DefaultBatchSize bounds the number of records per upsert request.
// Batch boundaries affect resource use only, never correctness.
const DefaultBatchSize = 50

// Default ingestion parameters. Chunk sizing defaults live on the
// chunker; these cover the walk itself.
var (
	// DefaultExcludeDirs are version-control and cache directory names
	// pruned from directory ingestion.
	DefaultExcludeDirs = []string{".git", "__pycache__", "node_modules"}

	// DefaultVaultExcludeDirs are editor and trash directory names
	// pruned from vault ingestion.
	DefaultVaultExcludeDirs = []string{".obsidian", ".trash", ".git"}

	// DefaultExtensions is the document extension allow-list for
	// directory ingestion.
	DefaultExtensions = []string{
		".txt", ".md", ".pdf", ".docx", ".doc",
		".rtf", ".html", ".htm", ".csv", ".json",
	}
)

// Default collection names, one per ingestion mode.
const (
	DefaultCollection      = "local-documents"
	DefaultVaultCollection = "obsidian-vault"
)

// SplitterFactory builds a splitter for the run's chunk parameters.
// Zero or negative values fall back to the splitter's own defaults.
type SplitterFactory func(chunkSize, chunkOverlap int) driven.Splitter

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// IngestService orchestrates extraction, chunking, content addressing
// and batch synchronisation into the collection backend.
type IngestService struct {
	store     driven.CollectionStore
	extractor driven.Extractor
	splitter  SplitterFactory
	batchSize int
}

// NewIngestService creates an ingestion service. The collection store
// and extractor are injected so tests can substitute doubles.
func NewIngestService(
	store driven.CollectionStore,
	extractor driven.Extractor,
	splitter SplitterFactory,
) *IngestService {
	return &IngestService{
		store:     store,
		extractor: extractor,
		splitter:  splitter,
		batchSize: DefaultBatchSize,
	}
}

// IngestDirectory walks a directory tree and synchronises one record per
// chunk into the target collection.
func (s *IngestService) IngestDirectory(ctx context.Context, opts driving.IngestOptions) (*driving.IngestReport, error) {
	applyDirectoryDefaults(&opts)

	root, err := validateRoot(opts.Root)
	if err != nil {
		return nil, err
	}

	split := s.splitter(opts.ChunkSize, opts.ChunkOverlap)
	allowed := extensionSet(opts.Extensions)
	report := &driving.IngestReport{}

	var records []domain.Record
	err = walkPruned(root, opts.ExcludeDirs, func(path, relPath string) error {
		ext := strings.ToLower(filepath.Ext(path))
		if !allowed[ext] {
			return nil
		}
		if !s.extractor.Supports(ext) {
			logger.Warn("unsupported file type %q: %s", ext, path)
			report.Skipped = append(report.Skipped, relPath)
			return nil
		}

		logger.Debug("processing file: %s", path)
		text := s.extractor.Extract(ctx, path)
		if strings.TrimSpace(text) == "" {
			logger.Warn("no text extracted from %s", path)
			report.Skipped = append(report.Skipped, relPath)
			return nil
		}

		fileID, err := contentid.FileID(path)
		if err != nil {
			logger.Warn("could not hash %s: %v", path, err)
			report.Skipped = append(report.Skipped, relPath)
			return nil
		}

		doc := domain.SourceDocument{Path: path, RelPath: relPath, Ext: ext, Text: text}
		fileRecords := buildRecords(doc, split.Split(doc.Text), fileID, nil, nil)
		if len(fileRecords) == 0 {
			report.Skipped = append(report.Skipped, relPath)
			return nil
		}

		records = append(records, fileRecords...)
		report.FilesProcessed++
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.syncRecords(ctx, opts.Collection, records, opts.Recreate); err != nil {
		return nil, err
	}
	report.ChunksSynced = len(records)
	return report, nil
}

// IngestVault ingests an Obsidian-style markdown vault. Notes are
// preprocessed (frontmatter, tags, wikilinks, image embeds) before
// chunking, and identified by relative path rather than content hash.
func (s *IngestService) IngestVault(ctx context.Context, opts driving.IngestOptions) (*driving.IngestReport, error) {
	applyVaultDefaults(&opts)

	root, err := validateRoot(opts.Root)
	if err != nil {
		return nil, err
	}

	split := s.splitter(opts.ChunkSize, opts.ChunkOverlap)
	report := &driving.IngestReport{}

	var records []domain.Record
	err = walkPruned(root, opts.ExcludeDirs, func(path, relPath string) error {
		if strings.ToLower(filepath.Ext(path)) != ".md" {
			return nil
		}

		logger.Debug("processing note: %s", path)
		content := s.extractor.Extract(ctx, path)
		if strings.TrimSpace(content) == "" {
			logger.Warn("no text extracted from %s", path)
			report.Skipped = append(report.Skipped, relPath)
			return nil
		}

		note := vault.ParseNote(content)
		if note.Body == "" {
			logger.Warn("note %s is empty after preprocessing", relPath)
			report.Skipped = append(report.Skipped, relPath)
			return nil
		}

		fileID := contentid.VaultFileID(relPath)
		doc := domain.SourceDocument{Path: path, RelPath: relPath, Ext: ".md", Text: note.Body}
		fileRecords := buildRecords(doc, split.Split(doc.Text), fileID, note.Frontmatter, note.Tags)
		if len(fileRecords) == 0 {
			report.Skipped = append(report.Skipped, relPath)
			return nil
		}

		records = append(records, fileRecords...)
		report.FilesProcessed++
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.syncRecords(ctx, opts.Collection, records, opts.Recreate); err != nil {
		return nil, err
	}
	report.ChunksSynced = len(records)
	return report, nil
}

// applyDirectoryDefaults fills unset directory ingestion options.
func applyDirectoryDefaults(opts *driving.IngestOptions) {
	if opts.Collection == "" {
		opts.Collection = DefaultCollection
	}
	if opts.ExcludeDirs == nil {
		opts.ExcludeDirs = DefaultExcludeDirs
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}
}

// applyVaultDefaults fills unset vault ingestion options.
func applyVaultDefaults(opts *driving.IngestOptions) {
	if opts.Collection == "" {
		opts.Collection = DefaultVaultCollection
	}
	if opts.ExcludeDirs == nil {
		opts.ExcludeDirs = DefaultVaultExcludeDirs
	}
}

// validateRoot resolves the ingestion root and confirms it is a
// directory. A missing or non-directory root is a configuration error,
// fatal before any work starts.
func validateRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("root %q: %w", root, domain.ErrInvalidInput)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("root %q is not a directory: %w", root, domain.ErrInvalidInput)
	}
	return abs, nil
}

// walkPruned walks the tree under root, pruning excluded directory names
// before descent so files inside excluded subtrees are never visited.
func walkPruned(root string, excludeDirs []string, visit func(path, relPath string) error) error {
	excluded := make(map[string]bool, len(excludeDirs))
	for _, name := range excludeDirs {
		excluded[name] = true
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			logger.Warn("walk error at %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && excluded[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", path, err)
		}
		return visit(path, filepath.ToSlash(relPath))
	})
}

// buildRecords converts a document's chunk texts into wire records with
// deterministic ids. Empty chunks are dropped; indexes stay contiguous
// over the kept chunks so re-ingestion of unchanged content reproduces
// identical ids.
func buildRecords(doc domain.SourceDocument, chunks []string, fileID string, frontmatter map[string]any, tags []string) []domain.Record {
	kept := make([]string, 0, len(chunks))
	for _, text := range chunks {
		if text != "" {
			kept = append(kept, text)
		}
	}

	records := make([]domain.Record, 0, len(kept))
	for i, text := range kept {
		chunk := domain.Chunk{
			ID:          contentid.ChunkID(fileID, i),
			Text:        text,
			RelPath:     doc.RelPath,
			FileName:    filepath.Base(doc.RelPath),
			Ext:         doc.Ext,
			Index:       i,
			TotalChunks: len(kept),
			Frontmatter: frontmatter,
			Tags:        tags,
		}
		record, dropped := domain.NewRecord(chunk)
		for _, key := range dropped {
			logger.Warn("metadata key %q collides with a reserved field, dropped (%s)", key, chunk.ID)
		}
		records = append(records, record)
	}
	return records
}

// syncRecords ensures the target collection and upserts records in
// bounded batches. Write failures are fatal: the run terminates without
// claiming success.
func (s *IngestService) syncRecords(ctx context.Context, collection string, records []domain.Record, recreate bool) error {
	if len(records) == 0 {
		logger.Warn("no documents processed, nothing to synchronise")
		return nil
	}

	exists := s.store.Exists(ctx, collection)
	if recreate && exists {
		logger.Info("recreating collection %s", collection)
		if err := s.store.Drop(ctx, collection); err != nil {
			return fmt.Errorf("drop collection: %w", err)
		}
		exists = false
	}
	if !exists {
		logger.Info("creating collection %s", collection)
		if err := s.store.Create(ctx, collection); err != nil {
			return fmt.Errorf("create collection: %w", err)
		}
	}

	total := (len(records) + s.batchSize - 1) / s.batchSize
	for i := 0; i < len(records); i += s.batchSize {
		end := i + s.batchSize
		if end > len(records) {
			end = len(records)
		}
		if err := s.store.Upsert(ctx, collection, records[i:end]); err != nil {
			return fmt.Errorf("upsert batch %d/%d: %w", i/s.batchSize+1, total, err)
		}
		logger.Info("added batch %d/%d", i/s.batchSize+1, total)
	}

	logger.Info("synchronised %d chunks into collection %s", len(records), collection)

	// Smoke-test that the collection is queryable. Failures only warn;
	// the data is already synced.
	hits := s.store.SearchByText(ctx, collection, "test query", domain.SearchOptions{Limit: 1})
	logger.Debug("smoke query returned %d hits", len(hits))

	return nil
}

// extensionSet lowercases an allow-list into a lookup set.
func extensionSet(exts []string) map[string]bool {
	set := make(map[string]bool, len(exts))
	for _, ext := range exts {
		set[strings.ToLower(ext)] = true
	}
	return set
}

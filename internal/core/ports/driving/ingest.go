package driving

import "context"

// IngestOptions configures a single ingestion run.
type IngestOptions struct {
	// Root is the directory (or vault) to ingest. Required.
	Root string

	// Collection is the target collection name.
	Collection string

	// ExcludeDirs are directory names pruned from the walk before
	// descent. Files inside excluded subtrees are never visited.
	ExcludeDirs []string

	// Extensions is the file extension allow-list (with dots,
	// case-insensitive). Ignored for vault ingestion, which is
	// markdown-only.
	Extensions []string

	// ChunkSize is the chunk window size in characters.
	ChunkSize int

	// ChunkOverlap is the overlap between consecutive chunks.
	ChunkOverlap int

	// Recreate drops and recreates the target collection before syncing.
	Recreate bool
}

// IngestReport summarises a completed ingestion run.
type IngestReport struct {
	// ChunksSynced is the number of chunk records upserted.
	ChunksSynced int

	// FilesProcessed is the number of files that produced chunks.
	FilesProcessed int

	// Skipped lists files that yielded no extractable text.
	Skipped []string
}

// Ingestor runs document ingestion pipelines.
type Ingestor interface {
	// IngestDirectory walks a directory tree and synchronises one
	// record per chunk into the target collection.
	IngestDirectory(ctx context.Context, opts IngestOptions) (*IngestReport, error)

	// IngestVault ingests an Obsidian-style markdown vault, extracting
	// frontmatter and tag metadata before chunking.
	IngestVault(ctx context.Context, opts IngestOptions) (*IngestReport, error)
}

package domain

// SourceDocument represents a single file discovered during an ingestion
// walk. It is transient: created when the file is read, discarded once its
// chunks have been handed to the collection backend.
type SourceDocument struct {
	// Path is the absolute path on disk.
	Path string

	// RelPath is the path relative to the ingestion root.
	RelPath string

	// Ext is the lowercased file extension, including the dot.
	Ext string

	// Text is the extracted plain text content.
	Text string
}

// Chunk is a contiguous slice of a document's extracted text.
// Chunks of the same document overlap by the configured overlap size;
// concatenating them in Index order and discounting the overlap
// reproduces the extracted text.
type Chunk struct {
	// ID is the deterministic chunk identifier, {fileID}_chunk_{index}.
	ID string

	// Text is the chunk content, trimmed of surrounding whitespace.
	Text string

	// RelPath is the source file's path relative to the ingestion root.
	RelPath string

	// FileName is the source file's base name.
	FileName string

	// Ext is the source file's lowercased extension, including the dot.
	Ext string

	// Index is the 0-based position within the document.
	Index int

	// TotalChunks is the number of chunks derived from the same document.
	TotalChunks int

	// Frontmatter holds header metadata extracted from vault notes.
	// Nil for non-vault documents.
	Frontmatter map[string]any

	// Tags holds inline #tag tokens extracted from vault notes.
	Tags []string
}

// Record is the wire representation of a chunk: the reserved fields the
// backend understands plus a flattened bag of metadata fields.
type Record struct {
	// ID becomes the backend's _id field. Required for idempotent upserts;
	// an empty ID is rejected at the store boundary.
	ID string

	// Text is the field the backend embeds and indexes.
	Text string

	// Metadata contains arbitrary additional fields, flattened onto the
	// document at the wire level. Keys colliding with reserved field
	// names are dropped before transmission.
	Metadata map[string]any
}

// Reserved field names the backend owns on every stored document.
// Metadata keys must never collide with these.
const (
	FieldID         = "_id"
	FieldText       = "text"
	FieldScore      = "_score"
	FieldHighlights = "_highlights"
)

// IsReservedField reports whether key is owned by the backend and must
// not appear as a metadata key.
func IsReservedField(key string) bool {
	switch key {
	case FieldID, FieldText, FieldScore, FieldHighlights:
		return true
	}
	return false
}

// NewRecord builds a Record from a chunk, flattening its attributes into
// metadata fields. Returns the record and the list of metadata keys that
// were dropped because they collided with reserved field names.
func NewRecord(c Chunk) (Record, []string) {
	meta := map[string]any{
		"file_path":    c.RelPath,
		"file_name":    c.FileName,
		"chunk_index":  c.Index,
		"total_chunks": c.TotalChunks,
	}
	if c.Ext != "" {
		meta["file_type"] = c.Ext
	}

	// Prefixing frontmatter keys doubles as the rename that keeps user
	// metadata clear of backend-owned field names.
	for key, value := range c.Frontmatter {
		meta["frontmatter_"+key] = value
	}
	if len(c.Tags) > 0 {
		meta["tags"] = c.Tags
	}

	var dropped []string
	for key := range meta {
		if IsReservedField(key) {
			dropped = append(dropped, key)
			delete(meta, key)
		}
	}

	return Record{
		ID:       c.ID,
		Text:     c.Text,
		Metadata: meta,
	}, dropped
}

package driven

import "context"

// Extractor converts a raw file into a plain text string, dispatching on
// file extension. Extraction is best-effort: a corrupt file, a decoding
// failure or an unsupported format yields an empty string, never an error.
// Callers must treat empty extraction as "skip this file".
type Extractor interface {
	// Extract returns the plain text content of the file at path.
	// An empty result means the file contributed no indexable text.
	Extract(ctx context.Context, path string) string

	// Supports reports whether the given lowercased extension
	// (including the dot) is handled by a registered extractor.
	Supports(ext string) bool
}

// Splitter splits a text string into an ordered sequence of overlapping
// chunks at natural boundaries.
type Splitter interface {
	// Split returns the chunk texts in document order. Text no longer
	// than the chunk size is returned as a single trimmed chunk.
	Split(text string) []string
}

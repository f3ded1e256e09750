package extractors

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/corpus-cli/internal/core/ports/driven"
	"github.com/custodia-labs/corpus-cli/internal/extractors/docx"
	"github.com/custodia-labs/corpus-cli/internal/extractors/pdf"
	"github.com/custodia-labs/corpus-cli/internal/extractors/plaintext"
	"github.com/custodia-labs/corpus-cli/internal/logger"
)

// FileExtractor handles one family of file formats.
type FileExtractor interface {
	// Extensions returns the lowercased extensions (with dots) this
	// extractor handles.
	Extensions() []string

	// Extract returns the plain text content of the file at path.
	Extract(ctx context.Context, path string) (string, error)
}

// Ensure Registry implements the driven port.
var _ driven.Extractor = (*Registry)(nil)

// Registry dispatches extraction on lowercased file extension.
type Registry struct {
	byExt map[string]FileExtractor
}

// NewRegistry creates a registry for the given extractors. Later
// extractors win extension conflicts.
func NewRegistry(extractors ...FileExtractor) *Registry {
	r := &Registry{byExt: make(map[string]FileExtractor)}
	for _, e := range extractors {
		for _, ext := range e.Extensions() {
			r.byExt[strings.ToLower(ext)] = e
		}
	}
	return r
}

// Default returns a registry with all built-in extractors registered.
func Default() *Registry {
	return NewRegistry(plaintext.New(), pdf.New(), docx.New())
}

// Supports reports whether the extension is handled.
func (r *Registry) Supports(ext string) bool {
	_, ok := r.byExt[strings.ToLower(ext)]
	return ok
}

// Extract returns the plain text content of the file at path. All
// failure modes degrade to an empty result with a logged warning;
// callers treat empty extraction as "skip this file".
func (r *Registry) Extract(ctx context.Context, path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	e, ok := r.byExt[ext]
	if !ok {
		logger.Warn("unsupported file type %q: %s", ext, path)
		return ""
	}

	text, err := e.Extract(ctx, path)
	if err != nil {
		logger.Warn("extraction failed for %s: %v", path, err)
		return ""
	}
	return text
}

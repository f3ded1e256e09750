// Package plaintext extracts text from files that are already text.
package plaintext

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Extractor reads text formats directly, trying a fixed ordered list of
// character encodings until one decodes cleanly.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the text formats read directly.
func (e *Extractor) Extensions() []string {
	return []string{
		".txt", ".md", ".markdown", ".csv", ".json",
		".html", ".htm", ".rtf", ".log", ".yaml", ".yml",
	}
}

// Extract reads the file and decodes it as UTF-8, then Latin-1, then
// Windows-1252, stopping at the first encoding that decodes without
// error. Latin-1 maps every byte, so decoding never fails outright;
// non-text binaries surface later as empty or useless chunk text, which
// the pipeline tolerates.
func (e *Extractor) Extract(_ context.Context, path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}

	if utf8.Valid(raw) {
		return string(raw), nil
	}

	for _, cm := range []*charmap.Charmap{charmap.ISO8859_1, charmap.Windows1252} {
		decoded, err := cm.NewDecoder().Bytes(raw)
		if err == nil {
			return string(decoded), nil
		}
	}

	return "", fmt.Errorf("could not decode %s with any tried encoding", path)
}

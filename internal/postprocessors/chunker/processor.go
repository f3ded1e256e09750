// Package chunker provides a boundary-aware overlapping text splitter.
package chunker

import (
	"strings"

	"github.com/custodia-labs/corpus-cli/internal/core/ports/driven"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// Ensure Processor implements the interface.
var _ driven.Splitter = (*Processor)(nil)

// Processor splits text into overlapping chunks, pulling each chunk's
// right edge back to the best natural boundary inside the window.
// Boundaries are tried in strict priority order: paragraph break,
// sentence break, single space, raw window edge. A boundary is accepted
// only if it falls after the window's midpoint, so no chunk degenerates
// below half the window size.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// ChunkSize returns the configured window size.
func (p *Processor) ChunkSize() int {
	return p.chunkSize
}

// Overlap returns the configured overlap.
func (p *Processor) Overlap() int {
	return p.overlap
}

// Split returns the chunk texts in document order. Text no longer than
// the chunk size comes back as a single trimmed chunk. Each subsequent
// window starts overlap characters before the previous window's
// (possibly adjusted) end.
func (p *Processor) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		// Empty content produces no chunks
		return nil
	}

	if len(text) <= p.chunkSize {
		return []string{strings.TrimSpace(text)}
	}

	estimated := len(text)/(p.chunkSize-p.overlap) + 1
	chunks := make([]string, 0, estimated)

	start := 0
	for start < len(text) {
		end := start + p.chunkSize
		if end < len(text) {
			end = p.adjustEnd(text, start, end)
		} else {
			end = len(text)
		}

		chunks = append(chunks, strings.TrimSpace(text[start:end]))

		if end == len(text) {
			break
		}

		next := end - p.overlap
		if next <= start {
			// The boundary pull-back ate the whole step; skip the
			// overlap rather than stall.
			next = end
		}
		start = next
	}

	return chunks
}

// adjustEnd pulls the window's right edge back to the highest-priority
// natural boundary past the window midpoint. The sentence boundary keeps
// its period on the left chunk; a mid-word cut at the raw edge is the
// last resort.
func (p *Processor) adjustEnd(text string, start, end int) int {
	mid := start + p.chunkSize/2
	window := text[start:end]

	if para := strings.LastIndex(window, "\n\n"); para != -1 && start+para > mid {
		return start + para
	}
	if sent := strings.LastIndex(window, ". "); sent != -1 && start+sent > mid {
		return start + sent + 1
	}
	if space := strings.LastIndex(window, " "); space != -1 && start+space > mid {
		return start + space
	}
	return end
}

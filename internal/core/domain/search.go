package domain

// SearchHit represents a single ranked result from the collection backend.
type SearchHit struct {
	// ID is the backend document identifier.
	ID string

	// Score is the backend's native relevance score. For a
	// cosine-similarity backend this lies in [0, 1].
	Score float64

	// Distance is 1 - Score. Only meaningful on the vector query path,
	// where the backend's native metric is cosine similarity; it must be
	// revisited if the backend metric changes.
	Distance float64

	// Text is the indexed text field of the matched document.
	Text string

	// Metadata contains all non-reserved fields of the matched document.
	Metadata map[string]any
}

// Filter expresses equality-only constraints on metadata fields.
// An empty filter matches everything.
type Filter map[string]any

// SearchOptions configures a text search query.
type SearchOptions struct {
	// Limit is the maximum number of results.
	Limit int

	// Filter restricts results to documents whose fields equal the
	// given values. Optional.
	Filter Filter
}

// DefaultSearchLimit is used when callers ask for zero or negative limits.
const DefaultSearchLimit = 10

package marqo

import (
	"github.com/custodia-labs/corpus-cli/internal/core/domain"
)

// searchResponse is the wire shape of a search result. Hits carry the
// reserved fields plus every stored metadata key at the top level.
type searchResponse struct {
	Hits []map[string]any `json:"hits"`
}

// toHits converts wire hits into domain hits. Reserved fields populate
// the typed members; everything else becomes metadata. Distance is
// derived from score so callers ranking by either agree on order.
func (r searchResponse) toHits() []domain.SearchHit {
	if len(r.Hits) == 0 {
		return nil
	}

	hits := make([]domain.SearchHit, 0, len(r.Hits))
	for _, raw := range r.Hits {
		hit := domain.SearchHit{Metadata: map[string]any{}}
		for key, value := range raw {
			switch key {
			case domain.FieldID:
				hit.ID, _ = value.(string)
			case domain.FieldText:
				hit.Text, _ = value.(string)
			case domain.FieldScore:
				if score, ok := value.(float64); ok {
					hit.Score = score
					hit.Distance = 1 - score
				}
			case domain.FieldHighlights:
				// Highlights are not surfaced.
			default:
				hit.Metadata[key] = value
			}
		}
		hits = append(hits, hit)
	}
	return hits
}

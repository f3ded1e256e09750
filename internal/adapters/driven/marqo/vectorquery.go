package marqo

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/corpus-cli/internal/core/domain"
	"github.com/custodia-labs/corpus-cli/internal/core/ports/driven"
	"github.com/custodia-labs/corpus-cli/internal/logger"
)

// proxyQueryText is the placeholder content of the proxy document. Its
// value is irrelevant; only the document's backend-side embedding is.
const proxyQueryText = "query_document"

// proxyCollectionPrefix namespaces transient proxy collections so stray
// ones are recognisable if cleanup ever fails.
const proxyCollectionPrefix = "temp_query_"

// Ensure VectorQuery implements the interface.
var _ driven.VectorQuerier = (*VectorQuery)(nil)

// VectorQuery answers vector searches against a backend that only
// accepts text queries, using the document-proxy protocol: a throwaway
// collection receives one proxy document, and the target collection is
// searched by reference to that document's embedding. The input vectors
// select how many searches run; the backend re-embeds the proxy text
// rather than consuming the raw vectors.
type VectorQuery struct {
	client *Client
}

// NewVectorQuery creates a querier on top of an existing client.
func NewVectorQuery(client *Client) *VectorQuery {
	return &VectorQuery{client: client}
}

// SearchByVectors returns one ranked hit list per input vector. A
// failure while serving one vector yields an empty slot for it; the
// remaining vectors still run.
func (q *VectorQuery) SearchByVectors(ctx context.Context, name string, vectors [][]float32, limit int) [][]domain.SearchHit {
	results := make([][]domain.SearchHit, len(vectors))
	for i := range vectors {
		hits, err := q.searchOne(ctx, name, limit)
		if err != nil {
			logger.Warn("vector query %d/%d against %s failed: %v", i+1, len(vectors), name, err)
			continue
		}
		results[i] = hits
	}
	return results
}

// searchOne runs a single proxy-document search round trip.
func (q *VectorQuery) searchOne(ctx context.Context, name string, limit int) ([]domain.SearchHit, error) {
	proxy := proxyCollectionPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]

	if err := q.client.Create(ctx, proxy); err != nil {
		return nil, err
	}
	// Cleanup must not mask the search outcome.
	defer func() {
		if err := q.client.Drop(ctx, proxy); err != nil {
			logger.Warn("cleanup of proxy collection %s failed: %v", proxy, err)
		}
	}()

	docID, err := q.insertProxyDocument(ctx, proxy)
	if err != nil {
		return nil, err
	}

	// The anchor document reference is the query itself: the backend
	// ranks the target collection against the proxy document's
	// embedding, not against any literal text.
	body := map[string]any{
		"q": map[string]any{
			"$document": map[string]any{
				"index_name":  proxy,
				"document_id": docID,
			},
		},
		"limit": searchLimit(limit),
	}
	var resp searchResponse
	if err := q.client.doJSON(ctx, http.MethodPost, q.client.indexPath(name, "search"), body, &resp); err != nil {
		return nil, fmt.Errorf("document-reference search against %s: %w", name, err)
	}
	return resp.toHits(), nil
}

// insertProxyDocument adds the single id-less proxy document and reads
// back the id the backend assigned to it.
func (q *VectorQuery) insertProxyDocument(ctx context.Context, proxy string) (string, error) {
	doc := map[string]any{domain.FieldText: proxyQueryText}
	if err := q.client.addDocuments(ctx, proxy, []map[string]any{doc}); err != nil {
		return "", fmt.Errorf("insert proxy document: %w", err)
	}

	hits := q.client.SearchByText(ctx, proxy, proxyQueryText, domain.SearchOptions{Limit: 1})
	if len(hits) == 0 || hits[0].ID == "" {
		return "", fmt.Errorf("proxy document not retrievable from %s", proxy)
	}
	return hits[0].ID, nil
}

// Package marqo implements the collection store ports against a
// Marqo-style tensor search backend over REST. The backend embeds and
// indexes the text field of each document itself; callers never send
// vectors on the write path, which is also why vector queries go through
// the document-proxy protocol in vectorquery.go.
package marqo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/corpus-cli/internal/core/domain"
	"github.com/custodia-labs/corpus-cli/internal/core/ports/driven"
	"github.com/custodia-labs/corpus-cli/internal/logger"
)

// DefaultTimeout bounds each backend request.
const DefaultTimeout = 30 * time.Second

// DefaultRequestsPerSecond is the client-side throttle on backend calls.
// Keeps bulk ingestion from overwhelming a co-hosted backend.
const DefaultRequestsPerSecond = 10

// Ensure Client implements the interface.
var _ driven.CollectionStore = (*Client)(nil)

// Config holds connection settings for the backend.
type Config struct {
	// URL is the backend base URL, e.g. http://localhost:8882.
	URL string

	// APIKey is sent in the api-key header when set.
	APIKey string

	// Timeout bounds each request. Defaults to DefaultTimeout.
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing calls.
	// Defaults to DefaultRequestsPerSecond.
	RequestsPerSecond float64
}

// Client is a REST client for the collection backend.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a backend client from config.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Exists probes the collection's stats endpoint. Any failure, including
// an unreachable backend, reports false.
func (c *Client) Exists(ctx context.Context, name string) bool {
	err := c.doJSON(ctx, http.MethodGet, c.indexPath(name, "stats"), nil, nil)
	return err == nil
}

// Create creates a named collection.
func (c *Client) Create(ctx context.Context, name string) error {
	if err := c.doJSON(ctx, http.MethodPost, c.indexPath(name), map[string]any{}, nil); err != nil {
		return fmt.Errorf("create collection %s: %w", name, err)
	}
	logger.Debug("created collection %s", name)
	return nil
}

// Drop deletes a collection and everything in it.
func (c *Client) Drop(ctx context.Context, name string) error {
	if err := c.doJSON(ctx, http.MethodDelete, c.indexPath(name), nil, nil); err != nil {
		return fmt.Errorf("delete collection %s: %w", name, err)
	}
	logger.Debug("deleted collection %s", name)
	return nil
}

// Upsert inserts or replaces records by id. Every record must carry an
// id: idempotent re-sync depends on caller-supplied identifiers, so
// backend-generated ids are rejected up front.
func (c *Client) Upsert(ctx context.Context, name string, records []domain.Record) error {
	docs := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		if rec.ID == "" {
			return fmt.Errorf("record in collection %s: %w", name, domain.ErrMissingID)
		}
		docs = append(docs, recordDocument(rec))
	}
	if len(docs) == 0 {
		return nil
	}

	if err := c.addDocuments(ctx, name, docs); err != nil {
		return fmt.Errorf("upsert %d records into %s: %w", len(records), name, err)
	}
	return nil
}

// DeleteByIDs removes specific records.
func (c *Client) DeleteByIDs(ctx context.Context, name string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := c.doJSON(ctx, http.MethodPost, c.indexPath(name, "documents", "delete-batch"), ids, nil); err != nil {
		return fmt.Errorf("delete %d records from %s: %w", len(ids), name, err)
	}
	return nil
}

// SearchByText runs a tensor search with a text query. Backend failures
// degrade to an empty hit list; an empty result is indistinguishable
// from "no data" by design.
func (c *Client) SearchByText(ctx context.Context, name, query string, opts domain.SearchOptions) []domain.SearchHit {
	body := map[string]any{
		"q":     query,
		"limit": searchLimit(opts.Limit),
	}
	if len(opts.Filter) > 0 {
		body["filter"] = filterString(opts.Filter)
	}

	return c.search(ctx, name, body)
}

// SearchByFilter returns documents matching equality constraints using
// a lexical empty-query search, as no relevance ranking is wanted.
func (c *Client) SearchByFilter(ctx context.Context, name string, filter domain.Filter, limit int) []domain.SearchHit {
	body := map[string]any{
		"q":            "",
		"limit":        searchLimit(limit),
		"searchMethod": "LEXICAL",
	}
	if len(filter) > 0 {
		body["filter"] = filterString(filter)
	}

	return c.search(ctx, name, body)
}

// search posts a search body and parses hits, degrading errors to empty.
func (c *Client) search(ctx context.Context, name string, body map[string]any) []domain.SearchHit {
	var resp searchResponse
	if err := c.doJSON(ctx, http.MethodPost, c.indexPath(name, "search"), body, &resp); err != nil {
		logger.Warn("search against %s failed: %v", name, err)
		return nil
	}
	return resp.toHits()
}

// addDocuments posts raw documents with the text field registered as
// the tensor field. Shared by Upsert and the proxy-query path, which is
// the one caller allowed to omit _id.
func (c *Client) addDocuments(ctx context.Context, name string, docs []map[string]any) error {
	body := map[string]any{
		"documents":    docs,
		"tensorFields": []string{domain.FieldText},
	}
	return c.doJSON(ctx, http.MethodPost, c.indexPath(name, "documents"), body, nil)
}

// recordDocument flattens a record into the wire document shape.
// Metadata keys colliding with reserved field names are dropped here as
// the final guard; NewRecord already filters chunk metadata.
func recordDocument(rec domain.Record) map[string]any {
	doc := map[string]any{
		domain.FieldID:   rec.ID,
		domain.FieldText: rec.Text,
	}
	for key, value := range rec.Metadata {
		if domain.IsReservedField(key) {
			logger.Warn("metadata key %q collides with a reserved field, dropped (%s)", key, rec.ID)
			continue
		}
		doc[key] = value
	}
	return doc
}

// filterString renders equality constraints in the backend's filter
// syntax, joining conjunctions in sorted key order for determinism.
func filterString(filter domain.Filter) string {
	keys := make([]string, 0, len(filter))
	for key := range filter {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s:(%v)", key, filter[key]))
	}
	return strings.Join(parts, " AND ")
}

func searchLimit(limit int) int {
	if limit <= 0 {
		return domain.DefaultSearchLimit
	}
	return limit
}

// indexPath builds /indexes/{name}/... with the name escaped.
func (c *Client) indexPath(name string, parts ...string) string {
	segments := append([]string{"indexes", name}, parts...)
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return "/" + strings.Join(segments, "/")
}

// doJSON performs one rate-limited request, encoding body and decoding
// the response into out when non-nil. Non-2xx statuses are errors.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: status %s: %w", method, path, resp.Status, domain.ErrBackendUnavailable)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/corpus-cli/internal/core/domain"
)

var (
	searchCollection string
	searchLimit      int
	searchJSON       bool
	searchFilters    []string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search a collection by text similarity",
	Long: `Runs a tensor similarity search against the collection. Results are
ranked by score; metadata filters restrict candidates to records whose
metadata matches every given key=value pair exactly.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchCollection, "collection", "c", "", "collection to search (default \"local-documents\")")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultSearchLimit, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringArrayVar(&searchFilters, "filter", nil, "metadata equality filter, key=value (repeatable)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	filter, err := parseFilters(searchFilters)
	if err != nil {
		return err
	}

	opts := domain.SearchOptions{
		Limit:  searchLimit,
		Filter: filter,
	}
	hits := searchService.Search(cmd.Context(), searchCollection, args[0], opts)

	if searchJSON {
		return outputHitsJSON(cmd, hits)
	}
	return outputHitsTable(cmd, hits)
}

// parseFilters converts key=value pairs into an equality filter.
func parseFilters(pairs []string) (domain.Filter, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	filter := make(domain.Filter, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid filter %q, expected key=value", pair)
		}
		filter[key] = value
	}
	return filter, nil
}

func outputHitsJSON(cmd *cobra.Command, hits []domain.SearchHit) error {
	data, err := json.MarshalIndent(hits, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputHitsTable(cmd *cobra.Command, hits []domain.SearchHit) error {
	if len(hits) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, hit := range hits {
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, hit.ID, hit.Score)
		if path, ok := hit.Metadata["file_path"].(string); ok && path != "" {
			cmd.Printf("      File: %s\n", path)
		}
		if snippet := makeSnippet(hit.Text); snippet != "" {
			cmd.Printf("      %s\n", snippet)
		}
		cmd.Println()
	}
	return nil
}

// makeSnippet returns the first line of text, truncated for display.
func makeSnippet(text string) string {
	const maxLen = 120

	line := strings.TrimSpace(text)
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = strings.TrimSpace(line[:idx])
	}
	if len(line) > maxLen {
		line = line[:maxLen] + "..."
	}
	return line
}

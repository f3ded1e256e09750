package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	collectionGetLimit   int
	collectionGetFilters []string
	collectionGetJSON    bool
)

var collectionCmd = &cobra.Command{
	Use:   "collection",
	Short: "Manage collections",
}

var collectionExistsCmd = &cobra.Command{
	Use:   "exists [name]",
	Short: "Check whether a collection exists",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionExists,
}

var collectionDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a collection and everything in it",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionDelete,
}

var collectionGetCmd = &cobra.Command{
	Use:   "get [name]",
	Short: "Fetch records from a collection by metadata filter",
	Long: `Fetches records matching the given metadata filters, without
relevance ranking. With no filters, returns records up to the limit.`,
	Args: cobra.ExactArgs(1),
	RunE: runCollectionGet,
}

func init() {
	collectionGetCmd.Flags().IntVarP(&collectionGetLimit, "limit", "n", 10, "maximum number of records")
	collectionGetCmd.Flags().StringArrayVar(&collectionGetFilters, "filter", nil, "metadata equality filter, key=value (repeatable)")
	collectionGetCmd.Flags().BoolVar(&collectionGetJSON, "json", false, "output records as JSON")

	collectionCmd.AddCommand(collectionExistsCmd)
	collectionCmd.AddCommand(collectionDeleteCmd)
	collectionCmd.AddCommand(collectionGetCmd)
	rootCmd.AddCommand(collectionCmd)
}

func runCollectionExists(cmd *cobra.Command, args []string) error {
	if collectionStore == nil {
		return errors.New("collection store not configured")
	}

	name := args[0]
	if collectionStore.Exists(cmd.Context(), name) {
		cmd.Printf("Collection %s exists.\n", name)
	} else {
		cmd.Printf("Collection %s does not exist.\n", name)
	}
	return nil
}

func runCollectionDelete(cmd *cobra.Command, args []string) error {
	if collectionStore == nil {
		return errors.New("collection store not configured")
	}

	name := args[0]
	if !collectionStore.Exists(cmd.Context(), name) {
		cmd.Printf("Collection %s does not exist.\n", name)
		return nil
	}

	if err := collectionStore.Drop(cmd.Context(), name); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	cmd.Printf("Collection %s deleted.\n", name)
	return nil
}

func runCollectionGet(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	filter, err := parseFilters(collectionGetFilters)
	if err != nil {
		return err
	}

	hits := searchService.Get(cmd.Context(), args[0], filter, collectionGetLimit)

	if collectionGetJSON {
		return outputHitsJSON(cmd, hits)
	}

	if len(hits) == 0 {
		cmd.Println("No records found.")
		return nil
	}
	for _, hit := range hits {
		cmd.Printf("  %s", hit.ID)
		if path, ok := hit.Metadata["file_path"].(string); ok && path != "" {
			cmd.Printf("  (%s)", path)
		}
		cmd.Println()
	}
	return nil
}

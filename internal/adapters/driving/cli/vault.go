package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/corpus-cli/internal/core/ports/driving"
)

var (
	vaultCollection   string
	vaultExclude      []string
	vaultChunkSize    int
	vaultChunkOverlap int
	vaultRecreate     bool
	vaultWatch        bool
)

var vaultCmd = &cobra.Command{
	Use:   "vault [path]",
	Short: "Ingest an Obsidian-style markdown vault",
	Long: `Ingests the markdown notes of a vault, extracting frontmatter and
tag metadata and rewriting wiki links to their display text before
chunking. Record ids derive from the note's path within the vault, so
renaming a note changes its ids while editing it does not.`,
	Args: cobra.ExactArgs(1),
	RunE: runVault,
}

func init() {
	vaultCmd.Flags().StringVarP(&vaultCollection, "collection", "c", "", "target collection (default \"obsidian-vault\")")
	vaultCmd.Flags().StringSliceVar(&vaultExclude, "exclude", nil, "directory names to prune from the walk")
	vaultCmd.Flags().IntVar(&vaultChunkSize, "chunk-size", 0, "chunk window size in characters")
	vaultCmd.Flags().IntVar(&vaultChunkOverlap, "chunk-overlap", 0, "overlap between consecutive chunks")
	vaultCmd.Flags().BoolVar(&vaultRecreate, "recreate", false, "drop and recreate the collection before syncing")
	vaultCmd.Flags().BoolVar(&vaultWatch, "watch", false, "re-run ingestion when notes change")
	rootCmd.AddCommand(vaultCmd)
}

func runVault(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	opts := driving.IngestOptions{
		Root:         args[0],
		Collection:   vaultCollection,
		ExcludeDirs:  excludeDirs(vaultExclude),
		ChunkSize:    vaultChunkSize,
		ChunkOverlap: vaultChunkOverlap,
		Recreate:     vaultRecreate,
	}

	run := func() error {
		report, err := ingestService.IngestVault(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("vault ingest failed: %w", err)
		}
		printReport(cmd, report)
		return nil
	}

	if err := run(); err != nil {
		return err
	}

	if vaultWatch {
		opts.Recreate = false
		return watchAndRun(cmd, args[0], run)
	}
	return nil
}

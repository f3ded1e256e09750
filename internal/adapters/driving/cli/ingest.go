package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/corpus-cli/internal/core/ports/driving"
)

var (
	ingestCollection   string
	ingestExclude      []string
	ingestExtensions   []string
	ingestChunkSize    int
	ingestChunkOverlap int
	ingestRecreate     bool
	ingestWatch        bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path]",
	Short: "Ingest a directory of documents into a collection",
	Long: `Walks the directory tree, extracts text from supported file types,
splits it into overlapping chunks, and synchronises one record per chunk
into the target collection. Chunk ids are derived from file content, so
re-running over unchanged files replaces records in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestCollection, "collection", "c", "", "target collection (default \"local-documents\")")
	ingestCmd.Flags().StringSliceVar(&ingestExclude, "exclude", nil, "directory names to prune from the walk")
	ingestCmd.Flags().StringSliceVar(&ingestExtensions, "ext", nil, "file extensions to include (e.g. .md,.pdf)")
	ingestCmd.Flags().IntVar(&ingestChunkSize, "chunk-size", 0, "chunk window size in characters")
	ingestCmd.Flags().IntVar(&ingestChunkOverlap, "chunk-overlap", 0, "overlap between consecutive chunks")
	ingestCmd.Flags().BoolVar(&ingestRecreate, "recreate", false, "drop and recreate the collection before syncing")
	ingestCmd.Flags().BoolVar(&ingestWatch, "watch", false, "re-run ingestion when files under the path change")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	opts := driving.IngestOptions{
		Root:         args[0],
		Collection:   ingestCollection,
		ExcludeDirs:  excludeDirs(ingestExclude),
		Extensions:   ingestExtensions,
		ChunkSize:    ingestChunkSize,
		ChunkOverlap: ingestChunkOverlap,
		Recreate:     ingestRecreate,
	}

	run := func() error {
		report, err := ingestService.IngestDirectory(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("ingest failed: %w", err)
		}
		printReport(cmd, report)
		return nil
	}

	if err := run(); err != nil {
		return err
	}

	if ingestWatch {
		// Recreate applies to the first run only; rescans sync in place.
		opts.Recreate = false
		return watchAndRun(cmd, args[0], run)
	}
	return nil
}

// excludeDirs resolves the exclude list: the flag wins, then the
// persisted default, then the service's built-in list (signalled by
// nil).
func excludeDirs(flagValue []string) []string {
	if flagValue != nil {
		return flagValue
	}
	if configStore != nil {
		return configStore.GetStringSlice(keyIngestExclude)
	}
	return nil
}

// printReport writes the ingestion summary.
func printReport(cmd *cobra.Command, report *driving.IngestReport) {
	cmd.Printf("Synchronised %d chunks from %d files.\n", report.ChunksSynced, report.FilesProcessed)
	if len(report.Skipped) > 0 {
		cmd.Printf("Skipped %d files with no extractable text:\n", len(report.Skipped))
		for _, path := range report.Skipped {
			cmd.Printf("  %s\n", path)
		}
	}
}

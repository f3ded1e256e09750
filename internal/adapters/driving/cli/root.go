// Package cli wires the cobra command surface to the core services.
//
// Commands read their service dependencies from package variables set
// by SetConfig at startup. Tests swap in mocks the same way.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/corpus-cli/internal/core/ports/driven"
	"github.com/custodia-labs/corpus-cli/internal/core/ports/driving"
	"github.com/custodia-labs/corpus-cli/internal/logger"
)

// version is set at startup from the build.
var version = "dev"

// Service dependencies for the commands.
var (
	ingestService   driving.Ingestor
	searchService   driving.Searcher
	collectionStore driven.CollectionStore
	configStore     driven.ConfigStore
)

var verbose bool

// Config holds the services the commands depend on.
type Config struct {
	Ingestor    driving.Ingestor
	Searcher    driving.Searcher
	Collections driven.CollectionStore
	ConfigStore driven.ConfigStore
}

// SetConfig installs the service dependencies.
func SetConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	ingestService = cfg.Ingestor
	searchService = cfg.Searcher
	collectionStore = cfg.Collections
	configStore = cfg.ConfigStore
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Ingest documents into a vector collection and search them",
	Long: `Corpus walks local document trees and Obsidian vaults, splits their
text into overlapping chunks, and synchronises one record per chunk into
a tensor search collection. Chunk ids are derived from file content, so
re-running ingestion replaces records in place.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// The flag enables debug output; the persisted default applies
		// when the flag is absent.
		logger.SetVerbose(verbose || (configStore != nil && configStore.GetBool(keyVerbose)))
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command with ctx as the base context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

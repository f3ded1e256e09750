// Command corpus ingests local document trees and Obsidian vaults into
// a tensor search collection and answers queries against it.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/corpus-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/corpus-cli/internal/adapters/driven/marqo"
	"github.com/custodia-labs/corpus-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/corpus-cli/internal/core/ports/driven"
	"github.com/custodia-labs/corpus-cli/internal/core/services"
	"github.com/custodia-labs/corpus-cli/internal/extractors"
	"github.com/custodia-labs/corpus-cli/internal/postprocessors/chunker"
)

// version is overridden at build time with -ldflags.
var version = "dev"

func main() {
	file.LoadDotEnv()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load configuration: %v\n", err)
		os.Exit(1)
	}

	settings := file.ResolveBackendSettings(configStore)
	client := marqo.NewClient(marqo.Config{
		URL:               settings.URL,
		APIKey:            settings.APIKey,
		RequestsPerSecond: settings.RequestsPerSecond,
	})

	splitterFactory := func(chunkSize, chunkOverlap int) driven.Splitter {
		return chunker.New(
			chunker.WithChunkSize(chunkSize),
			chunker.WithOverlap(chunkOverlap),
		)
	}

	ingestService := services.NewIngestService(client, extractors.Default(), splitterFactory)
	searchService := services.NewSearchService(client, marqo.NewVectorQuery(client))

	cli.SetConfig(&cli.Config{
		Ingestor:    ingestService,
		Searcher:    searchService,
		Collections: client,
		ConfigStore: configStore,
	})
	cli.SetVersion(version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}

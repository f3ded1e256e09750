package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/corpus-cli/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_HasLimitFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "10", flag.DefValue)
}

func TestSearchCmd_ExecutesWithQuery(t *testing.T) {
	_, searcher, _, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "test query"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, "test query", searcher.lastQuery)
	assert.Contains(t, buf.String(), "Results:")
	assert.Contains(t, buf.String(), "f1_chunk_0")
	assert.Contains(t, buf.String(), "notes/a.md")
}

func TestSearchCmd_PassesCollectionAndLimit(t *testing.T) {
	_, searcher, _, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "-c", "obsidian-vault", "-n", "25", "test query"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchCollection = ""
		searchLimit = domain.DefaultSearchLimit
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, "obsidian-vault", searcher.lastCollection)
	assert.Equal(t, 25, searcher.lastOpts.Limit)
}

func TestSearchCmd_FilterFlag(t *testing.T) {
	_, searcher, _, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "--filter", "file_name=a.md", "--filter", "chunk_index=0", "test query"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchFilters = nil
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, domain.Filter{"file_name": "a.md", "chunk_index": "0"}, searcher.lastOpts.Filter)
}

func TestSearchCmd_InvalidFilter(t *testing.T) {
	_, _, _, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "--filter", "no-equals-sign", "test query"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchFilters = nil
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expected key=value")
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	_, _, _, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "--json", "test query"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchJSON = false
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "\"ID\"")
	assert.Contains(t, buf.String(), "\"Score\"")
}

func TestSearchCmd_NoResults(t *testing.T) {
	_, searcher, _, cleanup := setupTestServices()
	defer cleanup()
	searcher.hits = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "nothing matches"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No results found.")
}

func TestSearchCmd_ServiceNotConfigured(t *testing.T) {
	oldService := searchService
	searchService = nil
	defer func() {
		searchService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "test"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestMakeSnippet(t *testing.T) {
	assert.Equal(t, "first line", makeSnippet("first line\nsecond line"))
	assert.Equal(t, "", makeSnippet("   \n  "))

	long := makeSnippet(string(bytes.Repeat([]byte("a"), 200)))
	assert.Len(t, long, 123)
	assert.Contains(t, long, "...")
}

package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetIngestFlags() {
	ingestCollection = ""
	ingestExclude = nil
	ingestExtensions = nil
	ingestChunkSize = 0
	ingestChunkOverlap = 0
	ingestRecreate = false
	ingestWatch = false
}

func TestIngestCmd_Use(t *testing.T) {
	assert.Equal(t, "ingest [path]", ingestCmd.Use)
}

func TestIngestCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestIngestCmd_HasFlags(t *testing.T) {
	for _, name := range []string{"collection", "exclude", "ext", "chunk-size", "chunk-overlap", "recreate", "watch"} {
		assert.NotNil(t, ingestCmd.Flags().Lookup(name), "flag %s should exist", name)
	}
}

func TestIngestCmd_PassesOptions(t *testing.T) {
	ingestor, _, _, cleanup := setupTestServices()
	defer cleanup()
	defer resetIngestFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{
		"ingest", "/docs",
		"-c", "papers",
		"--exclude", "drafts",
		"--ext", ".md,.pdf",
		"--chunk-size", "800",
		"--chunk-overlap", "100",
		"--recreate",
	})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.False(t, ingestor.lastVault)
	assert.Equal(t, "/docs", ingestor.lastOpts.Root)
	assert.Equal(t, "papers", ingestor.lastOpts.Collection)
	assert.Equal(t, []string{"drafts"}, ingestor.lastOpts.ExcludeDirs)
	assert.Equal(t, []string{".md", ".pdf"}, ingestor.lastOpts.Extensions)
	assert.Equal(t, 800, ingestor.lastOpts.ChunkSize)
	assert.Equal(t, 100, ingestor.lastOpts.ChunkOverlap)
	assert.True(t, ingestor.lastOpts.Recreate)
	assert.Contains(t, buf.String(), "Synchronised 4 chunks from 2 files.")
}

func TestIngestCmd_ReportsSkippedFiles(t *testing.T) {
	ingestor, _, _, cleanup := setupTestServices()
	defer cleanup()
	defer resetIngestFlags()
	ingestor.report.Skipped = []string{"scans/blank.pdf"}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ingest", "/docs"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Skipped 1 files")
	assert.Contains(t, buf.String(), "scans/blank.pdf")
}

func TestIngestCmd_ServiceError(t *testing.T) {
	ingestor, _, _, cleanup := setupTestServices()
	defer cleanup()
	defer resetIngestFlags()
	ingestor.err = errMockFailure

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest", "/docs"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ingest failed")
}

func TestIngestCmd_ServiceNotConfigured(t *testing.T) {
	oldService := ingestService
	ingestService = nil
	defer func() {
		ingestService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest", "/docs"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestVaultCmd_Use(t *testing.T) {
	assert.Equal(t, "vault [path]", vaultCmd.Use)
}

func TestVaultCmd_PassesOptions(t *testing.T) {
	ingestor, _, _, cleanup := setupTestServices()
	defer cleanup()
	defer func() {
		vaultCollection = ""
		vaultExclude = nil
		vaultChunkSize = 0
		vaultChunkOverlap = 0
		vaultRecreate = false
		vaultWatch = false
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"vault", "/vault", "-c", "notes", "--exclude", ".trash"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.True(t, ingestor.lastVault)
	assert.Equal(t, "/vault", ingestor.lastOpts.Root)
	assert.Equal(t, "notes", ingestor.lastOpts.Collection)
	assert.Equal(t, []string{".trash"}, ingestor.lastOpts.ExcludeDirs)
	assert.Contains(t, buf.String(), "Synchronised 4 chunks from 2 files.")
}

package contentid

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0600))
	return path
}

func TestFileID_MatchesContentHash(t *testing.T) {
	content := []byte("Hello world. Hello again.")
	path := writeTemp(t, "a.txt", content)

	id, err := FileID(path)
	require.NoError(t, err)

	sum := sha256.Sum256(content)
	assert.Equal(t, hex.EncodeToString(sum[:]), id)
}

func TestFileID_IndependentOfPath(t *testing.T) {
	content := []byte("same bytes, different homes")
	a := writeTemp(t, "first.txt", content)
	b := writeTemp(t, "second.md", content)

	idA, err := FileID(a)
	require.NoError(t, err)
	idB, err := FileID(b)
	require.NoError(t, err)

	assert.Equal(t, idA, idB)
}

func TestFileID_LargerThanOneBlock(t *testing.T) {
	// Force multiple 64 KiB read blocks.
	content := make([]byte, 3*64*1024+17)
	for i := range content {
		content[i] = byte(i % 251)
	}
	path := writeTemp(t, "big.bin", content)

	id, err := FileID(path)
	require.NoError(t, err)

	sum := sha256.Sum256(content)
	assert.Equal(t, hex.EncodeToString(sum[:]), id)
}

func TestFileID_MissingFile(t *testing.T) {
	_, err := FileID(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestVaultFileID(t *testing.T) {
	assert.Equal(t, "daily_2024_note.md", VaultFileID("daily/2024/note.md"))
	assert.Equal(t, "a_b.md", VaultFileID(`a\b.md`))
	assert.Equal(t, "top.md", VaultFileID("top.md"))
}

func TestChunkID(t *testing.T) {
	assert.Equal(t, "abc_chunk_0", ChunkID("abc", 0))
	assert.Equal(t, "abc_chunk_12", ChunkID("abc", 12))
}

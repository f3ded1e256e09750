// Package contentid derives stable identifiers for files and chunks.
// File identifiers are content hashes, so re-ingesting unchanged content
// from any location produces identical ids and the backend's upsert
// becomes a true replace instead of a duplicate insert.
package contentid

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// blockSize is the read block size for streaming file hashes.
const blockSize = 64 * 1024

// FileID returns the hex-encoded SHA-256 of the file's raw bytes,
// streamed in fixed-size blocks. The path plays no part in the id.
func FileID(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, blockSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// VaultFileID returns a stable path-derived identifier for a vault note:
// the relative path with both kinds of path separator replaced by an
// underscore. Vault notes are identified by where they live in the vault,
// not by their bytes, so renaming a note re-indexes it under a new id.
func VaultFileID(relPath string) string {
	id := strings.ReplaceAll(relPath, "/", "_")
	return strings.ReplaceAll(id, "\\", "_")
}

// ChunkID composes the identifier for one chunk of a file. Deterministic
// and collision-free within a run as long as index is unique per file.
func ChunkID(fileID string, index int) string {
	return fmt.Sprintf("%s_chunk_%d", fileID, index)
}

// Package hasher computes stable content fingerprints for files.
//
// Digests are hex-encoded SHA-256 sums used purely as equality oracles by the
// diff engine: a mismatch between a cached digest and the live file's digest
// is the signal that the cached entry is stale. Digests are never decoded.
package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// sniffLimit bounds how many bytes the text heuristic examines
const sniffLimit = 4096

// HashBytes computes the hex-encoded SHA-256 digest of content
func HashBytes(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// HashFile computes the hex-encoded SHA-256 digest of a file's content,
// streaming so large files are not held in memory.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// IsProbablyText reports whether content looks like printable text. A NUL
// byte marks it binary outright; otherwise at least 85% of the sampled bytes
// must be printable ASCII or common whitespace.
func IsProbablyText(content []byte) bool {
	if len(content) == 0 {
		return true
	}
	sample := content
	if len(sample) > sniffLimit {
		sample = sample[:sniffLimit]
	}

	printable := 0
	for _, b := range sample {
		if b == 0 {
			return false
		}
		if b == '\n' || b == '\r' || b == '\t' || (b >= 0x20 && b <= 0x7e) {
			printable++
		}
	}
	return printable*100/len(sample) >= 85
}

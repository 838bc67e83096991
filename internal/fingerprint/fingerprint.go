// Package fingerprint computes cheap content fingerprints used to decide
// whether two files are the same media. A fingerprint combines the file size
// with a SHA256 digest of the leading bytes, which is enough to distinguish
// re-exports and edits without hashing multi-gigabyte videos in full.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// HeadBytes is how much of the file participates in the digest.
const HeadBytes = 512 * 1024

// Fingerprint identifies file content for duplicate detection.
type Fingerprint struct {
	Size   int64
	Digest string
}

// Compute reads the file at path and returns its fingerprint.
func Compute(path string) (Fingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("stat %s: %w", path, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.CopyN(hasher, file, HeadBytes); err != nil && err != io.EOF {
		return Fingerprint{}, fmt.Errorf("hash %s: %w", path, err)
	}

	return Fingerprint{
		Size:   info.Size(),
		Digest: hex.EncodeToString(hasher.Sum(nil)),
	}, nil
}

// Equal reports whether two fingerprints describe identical content.
func (f Fingerprint) Equal(other Fingerprint) bool {
	return f.Size == other.Size && f.Digest == other.Digest
}

// String renders the fingerprint as size:digest for logging.
func (f Fingerprint) String() string {
	return fmt.Sprintf("%d:%s", f.Size, f.Digest)
}

package compare

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"hash/crc32"
	"io"
	"sync"

	"github.com/sdejongh/mergenorris/pkg/models"
)

// Hasher computes a whole-file checksum from a stream. The checksum exists to
// detect accidental difference cheaply, not to resist adversarial collisions,
// so CRC-32 is a valid (and the default) choice.
type Hasher interface {
	// Sum consumes the reader and returns the hex-encoded checksum
	Sum(r io.Reader) (string, error)

	// Name returns the algorithm name
	Name() string
}

// algorithmHasher implements Hasher over any hash.Hash constructor
type algorithmHasher struct {
	name    string
	newHash func() hash.Hash
	pool    *sync.Pool
}

func newAlgorithmHasher(name string, newHash func() hash.Hash, bufferSize int) *algorithmHasher {
	if bufferSize < 4096 {
		bufferSize = 4096
	}
	return &algorithmHasher{
		name:    name,
		newHash: newHash,
		pool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, bufferSize)
				return &buf
			},
		},
	}
}

// Sum streams the reader through the hash function
func (h *algorithmHasher) Sum(r io.Reader) (string, error) {
	hasher := h.newHash()

	bufPtr := h.pool.Get().(*[]byte)
	defer h.pool.Put(bufPtr)

	if _, err := io.CopyBuffer(hasher, r, *bufPtr); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Name returns the algorithm name
func (h *algorithmHasher) Name() string {
	return h.name
}

// NewCRC32Hasher creates a CRC-32 (IEEE) hasher
func NewCRC32Hasher(bufferSize int) Hasher {
	return newAlgorithmHasher("crc32", func() hash.Hash {
		return crc32.NewIEEE()
	}, bufferSize)
}

// NewMD5Hasher creates an MD5 hasher
func NewMD5Hasher(bufferSize int) Hasher {
	return newAlgorithmHasher("md5", md5.New, bufferSize)
}

// NewSHA256Hasher creates a SHA-256 hasher
func NewSHA256Hasher(bufferSize int) Hasher {
	return newAlgorithmHasher("sha256", sha256.New, bufferSize)
}

// ForAlgorithm returns the hasher for a configured checksum algorithm
func ForAlgorithm(algo models.ChecksumAlgorithm, bufferSize int) (Hasher, error) {
	switch algo {
	case models.ChecksumCRC32:
		return NewCRC32Hasher(bufferSize), nil
	case models.ChecksumMD5:
		return NewMD5Hasher(bufferSize), nil
	case models.ChecksumSHA256:
		return NewSHA256Hasher(bufferSize), nil
	default:
		return nil, fmt.Errorf("unsupported checksum algorithm: %s (use: crc32, md5, sha256)", algo)
	}
}

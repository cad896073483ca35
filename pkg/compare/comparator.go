package compare

import (
	"fmt"
	"time"

	"github.com/sdejongh/mergenorris/pkg/storage"
)

// Result represents the outcome of comparing two files
type Result string

const (
	// Identical indicates equal size and equal whole-file checksum
	Identical Result = "identical"
	// Different indicates the files differ
	Different Result = "different"
)

// Comparison holds the result of comparing a source file against a destination
// file, with the measured metadata for diagnostics. Checksums are empty when
// the size check already settled the comparison.
type Comparison struct {
	SourcePath string
	DestPath   string
	Result     Result
	Reason     string

	SourceSize int64
	DestSize   int64

	SourceModTime time.Time
	DestModTime   time.Time

	SourceChecksum string
	DestChecksum   string
}

// ChecksumComparator decides file identity by size, then by whole-file
// checksum. Both operands are always hashed with the same algorithm.
type ChecksumComparator struct {
	fsys   storage.Filesystem
	hasher Hasher
}

// NewChecksumComparator creates a comparator using the given hasher
func NewChecksumComparator(fsys storage.Filesystem, hasher Hasher) *ChecksumComparator {
	return &ChecksumComparator{
		fsys:   fsys,
		hasher: hasher,
	}
}

// Name returns the name of the checksum algorithm in use
func (c *ChecksumComparator) Name() string {
	return c.hasher.Name()
}

// Compare compares two files for identity. If the sizes differ the files are
// Different and no checksum is computed. If either path cannot be read the
// comparison fails; the caller must not delete or overwrite anything based on
// an unresolved comparison.
func (c *ChecksumComparator) Compare(sourcePath, destPath string) (*Comparison, error) {
	sourceInfo, err := c.fsys.Stat(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat source file: %w", err)
	}

	destInfo, err := c.fsys.Stat(destPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat destination file: %w", err)
	}

	cmp := &Comparison{
		SourcePath:    sourcePath,
		DestPath:      destPath,
		SourceSize:    sourceInfo.Size,
		DestSize:      destInfo.Size,
		SourceModTime: sourceInfo.ModTime,
		DestModTime:   destInfo.ModTime,
	}

	// Cheap short-circuit: different sizes cannot be identical
	if sourceInfo.Size != destInfo.Size {
		cmp.Result = Different
		cmp.Reason = "file sizes differ"
		return cmp, nil
	}

	sourceSum, err := c.checksum(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to checksum source file: %w", err)
	}

	destSum, err := c.checksum(destPath)
	if err != nil {
		return nil, fmt.Errorf("failed to checksum destination file: %w", err)
	}

	cmp.SourceChecksum = sourceSum
	cmp.DestChecksum = destSum

	if sourceSum != destSum {
		cmp.Result = Different
		cmp.Reason = "checksums differ"
		return cmp, nil
	}

	cmp.Result = Identical
	cmp.Reason = "checksums match"
	return cmp, nil
}

// checksum streams one file through the hasher
func (c *ChecksumComparator) checksum(path string) (string, error) {
	reader, err := c.fsys.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	return c.hasher.Sum(reader)
}

package models

import (
	"time"
)

// ChecksumAlgorithm selects the whole-file checksum used when comparing
type ChecksumAlgorithm string

const (
	// ChecksumCRC32 uses CRC-32 (IEEE); fast, detects accidental difference
	ChecksumCRC32 ChecksumAlgorithm = "crc32"
	// ChecksumMD5 uses MD5 (faster than SHA-256, not collision resistant)
	ChecksumMD5 ChecksumAlgorithm = "md5"
	// ChecksumSHA256 uses SHA-256
	ChecksumSHA256 ChecksumAlgorithm = "sha256"
)

// RunConfig is the immutable configuration for one merge invocation.
// It is constructed once from config file and CLI flags and read-only afterwards.
type RunConfig struct {
	// Force overwrites existing destination files without prompting
	Force bool
	// Compare checksums existing destination files before acting
	Compare bool
	// RemoveIdentical deletes the source when comparison proves it identical
	RemoveIdentical bool
	// DryRun simulates all actions without touching the filesystem
	DryRun bool
	// CopyMode copies files instead of moving them (source retained)
	CopyMode bool
	// Interactive prompts the operator before overwriting
	Interactive bool
	// PreserveTimes carries the source modification time to the destination
	PreserveTimes bool
	// Verbose emits per-entry diagnostics
	Verbose bool
	// Summary prints the counter report at the end of the run
	Summary bool
	// CreateDest creates the destination directory if it does not exist
	CreateDest bool

	// Checksum is the comparison algorithm; the same algorithm is used for
	// both operands of every comparison in a run
	Checksum ChecksumAlgorithm
	// BufferSize is the I/O buffer size for copies and checksums
	BufferSize int
	// BandwidthLimit caps copy throughput in bytes per second (0 = unlimited)
	BandwidthLimit int64
}

// Validate checks if the run configuration is valid
func (c *RunConfig) Validate() error {
	switch c.Checksum {
	case ChecksumCRC32, ChecksumMD5, ChecksumSHA256:
	default:
		return &ValidationError{Field: "Checksum", Message: "must be crc32, md5, or sha256"}
	}
	if c.BufferSize < 1024 {
		return &ValidationError{Field: "BufferSize", Message: "buffer size must be at least 1024 bytes"}
	}
	if c.BandwidthLimit < 0 {
		return &ValidationError{Field: "BandwidthLimit", Message: "bandwidth limit cannot be negative"}
	}
	return nil
}

// RunStatus represents the overall result of a merge run
type RunStatus string

const (
	// StatusSuccess indicates no entry produced an error
	StatusSuccess RunStatus = "success"
	// StatusPartial indicates some entries failed
	StatusPartial RunStatus = "partial"
	// StatusFailed indicates every processed entry failed
	StatusFailed RunStatus = "failed"
)

// EntryError records an entry-level failure for the final report
type EntryError struct {
	Path      string
	Action    Action
	Error     string
	Timestamp time.Time
}

// RunReport represents the results of one merge run
type RunReport struct {
	// OperationID uniquely identifies the run
	OperationID string

	// Sources are the source arguments in processing order
	Sources []string

	// DestPath is the destination argument
	DestPath string

	// DryRun indicates the run was a simulation
	DryRun bool

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Stats holds the run counters
	Stats RunStats

	// Errors lists entry-level failures
	Errors []EntryError

	// Status is the overall result
	Status RunStatus
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

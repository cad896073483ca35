package storage

import (
	"io"
	"io/fs"
	"time"
)

// FileInfo represents metadata about a file or directory
type FileInfo struct {
	// Path is the absolute path on the filesystem
	Path string
	// RelativePath is the path relative to the listed root (List only)
	RelativePath string
	// Size in bytes
	Size int64
	// ModTime is the last modification time
	ModTime time.Time
	// IsDir indicates a directory
	IsDir bool
	// Mode holds the permission bits
	Mode fs.FileMode
}

// Filesystem defines the operations the merge engine performs on disk.
// All filesystem access goes through this interface so the engine can be
// exercised against stub implementations in tests.
type Filesystem interface {
	// Stat returns metadata for a path
	Stat(path string) (*FileInfo, error)

	// List returns every entry under root recursively, in lexical order,
	// with RelativePath populated relative to root. The root itself is
	// not included.
	List(root string) ([]FileInfo, error)

	// Open opens a file for reading
	Open(path string) (io.ReadCloser, error)

	// Create creates or truncates a file for writing. The parent directory
	// must already exist.
	Create(path string) (io.WriteCloser, error)

	// Rename moves a file, replacing the destination if it exists.
	// Fails across filesystem boundaries.
	Rename(oldPath, newPath string) error

	// Remove deletes a file or an empty directory. Removing a non-empty
	// directory fails; directory pruning relies on that failure to stop.
	Remove(path string) error

	// MkdirAll creates a directory and all necessary parents
	MkdirAll(path string) error

	// Chtimes sets the access and modification times of a path
	Chtimes(path string, atime, mtime time.Time) error
}

package storage

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// OS is the operating-system backed Filesystem implementation
type OS struct{}

// NewOS creates a new OS filesystem
func NewOS() *OS {
	return &OS{}
}

// Stat returns file metadata
func (o *OS) Stat(path string) (*FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	return &FileInfo{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		IsDir:   info.IsDir(),
		Mode:    info.Mode(),
	}, nil
}

// List returns all entries under root recursively in lexical order
func (o *OS) List(root string) ([]FileInfo, error) {
	var entries []FileInfo

	// WalkDir visits entries in lexical order, which keeps enumeration
	// deterministic across runs.
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}

		relPath, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		entries = append(entries, FileInfo{
			Path:         p,
			RelativePath: relPath,
			Size:         info.Size(),
			ModTime:      info.ModTime(),
			IsDir:        info.IsDir(),
			Mode:         info.Mode(),
		})

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", root, err)
	}

	return entries, nil
}

// Open opens a file for reading
func (o *OS) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// Create creates or truncates a file for writing
func (o *OS) Create(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// Rename moves a file, replacing an existing destination
func (o *OS) Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

// Remove deletes a file or an empty directory
func (o *OS) Remove(path string) error {
	return os.Remove(path)
}

// MkdirAll creates a directory and all necessary parents
func (o *OS) MkdirAll(path string) error {
	return os.MkdirAll(path, 0755)
}

// Chtimes sets the access and modification times of a path
func (o *OS) Chtimes(path string, atime, mtime time.Time) error {
	return os.Chtimes(path, atime, mtime)
}

var _ Filesystem = (*OS)(nil)

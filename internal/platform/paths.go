package platform

import (
	"path/filepath"
	"runtime"
	"strings"
)

// NormalizePath normalizes a path for the current platform
func NormalizePath(path string) string {
	normalized := filepath.Clean(path)

	// On Windows, ensure UNC paths are preserved
	if runtime.GOOS == "windows" {
		if strings.HasPrefix(path, "\\\\") && !strings.HasPrefix(normalized, "\\\\") {
			normalized = "\\\\" + normalized
		}
	}

	return normalized
}

// IsRootBoundary reports whether path is a filesystem root or a relative-root
// boundary beyond which upward directory pruning must not continue.
func IsRootBoundary(path string) bool {
	if path == "" || path == "." {
		return true
	}
	// filepath.Dir of a root returns the root itself; that fixed point marks
	// "/" on Unix and volume roots like "C:\" on Windows.
	return filepath.Dir(path) == path
}

// Contains reports whether child is the same path as root or lies below it.
// Both paths must already be absolute and cleaned.
func Contains(root, child string) bool {
	if root == child {
		return true
	}
	return strings.HasPrefix(child, root+string(filepath.Separator))
}

// PathError represents a path validation error
type PathError struct {
	Path    string
	Message string
}

func (e *PathError) Error() string {
	return "invalid path '" + e.Path + "': " + e.Message
}

// ValidatePath checks if a path is valid for the current platform
func ValidatePath(path string) error {
	if path == "" {
		return &PathError{Path: path, Message: "path is empty"}
	}

	if runtime.GOOS == "windows" {
		invalidChars := []string{"<", ">", "\"", "|", "?", "*"}
		for _, char := range invalidChars {
			if strings.Contains(path, char) {
				return &PathError{Path: path, Message: "path contains invalid character: " + char}
			}
		}
	}

	return nil
}

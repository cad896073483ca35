package models

// TransferEntry is a single (source, destination) pair produced by the tree
// walker. It lives only for the duration of one resolve/execute cycle.
type TransferEntry struct {
	// SourcePath is the absolute path of the file to merge
	SourcePath string

	// DestPath is the absolute path the file maps to under the destination
	DestPath string

	// SourceRoot is the source tree root for directory merges. It bounds
	// upward empty-directory pruning after a source removal. Empty for
	// single-file transfers.
	SourceRoot string
}

// Package types defines every cross‑package data structure used by the dirtree CLI.
package types

// XMLDirectoryElement names the root element written for a Directory.
const XMLDirectoryElement = "directory"

// FileEntry is the metadata of one file collected during a traversal.
// Size is nil when sizes were not requested.
type FileEntry struct {
	Name string
	Size *int64
	Path string
}

// Directory is one directory of the tree. It owns its files and subdirectories,
// both kept in the order the filesystem listed them.
type Directory struct {
	Name           string
	Files          []FileEntry
	Subdirectories []*Directory
}

// NewFileEntry constructs a FileEntry without a recorded size.
func NewFileEntry(name string, path string) FileEntry {
	return FileEntry{Name: name, Path: path}
}

// WithSize returns a copy of the entry carrying the provided byte size.
func (entry FileEntry) WithSize(sizeBytes int64) FileEntry {
	recordedSize := sizeBytes
	entry.Size = &recordedSize
	return entry
}

// HasSize reports whether a size was recorded for the entry.
func (entry FileEntry) HasSize() bool {
	return entry.Size != nil
}

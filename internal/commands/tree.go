// Package commands contains the core logic for collecting directory trees.
package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/dirtree/internal/types"
)

const (
	// errorReadDirectoryFormat is used when a directory cannot be read.
	errorReadDirectoryFormat = "reading directory %s: %w"
	// errorStatPathFormat is used when file information cannot be retrieved.
	errorStatPathFormat = "stat %s: %w"

	// debugPermissionDeniedMessage is logged when a directory listing stops on a permission error.
	debugPermissionDeniedMessage = "permission denied, keeping entries collected so far"
)

// Build walks rootDirectoryPath and returns its tree.
// A nil directory with a nil error means the depth limit excludes the root itself.
func (treeBuilder *TreeBuilder) Build(rootDirectoryPath string) (*types.Directory, error) {
	return treeBuilder.buildDirectory(rootDirectoryPath, 0)
}

// buildDirectory collects one directory level. Subdirectories are only recursed into
// after the parent listing reached them, so files at the depth boundary are kept.
func (treeBuilder *TreeBuilder) buildDirectory(currentDirectoryPath string, level int) (*types.Directory, error) {
	if treeBuilder.depthReached(level) {
		return nil, nil
	}

	directory := &types.Directory{Name: filepath.Base(currentDirectoryPath)}

	directoryEntries, readDirectoryError := readDirectoryUnsorted(currentDirectoryPath)
	if readDirectoryError != nil {
		if errors.Is(readDirectoryError, fs.ErrPermission) {
			treeBuilder.logPermissionDenied(currentDirectoryPath, readDirectoryError)
			return directory, nil
		}
		return nil, fmt.Errorf(errorReadDirectoryFormat, currentDirectoryPath, readDirectoryError)
	}

	for _, directoryEntry := range directoryEntries {
		entryError := treeBuilder.addEntry(directory, currentDirectoryPath, directoryEntry, level)
		if entryError == nil {
			continue
		}
		if errors.Is(entryError, fs.ErrPermission) {
			treeBuilder.logPermissionDenied(currentDirectoryPath, entryError)
			return directory, nil
		}
		return nil, entryError
	}

	return directory, nil
}

func (treeBuilder *TreeBuilder) addEntry(directory *types.Directory, currentDirectoryPath string, directoryEntry fs.DirEntry, level int) error {
	entryName := directoryEntry.Name()
	childPath := filepath.Join(currentDirectoryPath, entryName)
	isDirectory := resolvesToDirectory(childPath, directoryEntry)

	if treeBuilder.isIgnored(childPath, isDirectory) {
		return nil
	}

	if isDirectory {
		subdirectory, buildError := treeBuilder.buildDirectory(childPath, level+1)
		if buildError != nil {
			return buildError
		}
		if subdirectory != nil {
			directory.Subdirectories = append(directory.Subdirectories, subdirectory)
		}
		return nil
	}

	if !treeBuilder.ShowFiles || !strings.HasSuffix(entryName, treeBuilder.Extension) {
		return nil
	}

	fileEntry := types.NewFileEntry(entryName, childPath)
	if treeBuilder.ShowSize {
		fileInfo, statError := os.Stat(childPath)
		if statError != nil {
			return fmt.Errorf(errorStatPathFormat, childPath, statError)
		}
		fileEntry = fileEntry.WithSize(fileInfo.Size())
	}
	directory.Files = append(directory.Files, fileEntry)
	return nil
}

func (treeBuilder *TreeBuilder) logPermissionDenied(directoryPath string, permissionError error) {
	treeBuilder.logger().Debug(debugPermissionDeniedMessage,
		zap.String("path", directoryPath),
		zap.Error(permissionError),
	)
}

// readDirectoryUnsorted lists a directory in the order the operating system returns it.
// os.ReadDir would sort the entries by name.
func readDirectoryUnsorted(directoryPath string) ([]fs.DirEntry, error) {
	directoryHandle, openError := os.Open(directoryPath)
	if openError != nil {
		return nil, openError
	}
	defer directoryHandle.Close()
	return directoryHandle.ReadDir(-1)
}

// resolvesToDirectory reports whether the entry is a directory, following symlinks.
// A dangling symlink counts as a file.
func resolvesToDirectory(childPath string, directoryEntry fs.DirEntry) bool {
	if directoryEntry.Type()&fs.ModeSymlink == 0 {
		return directoryEntry.IsDir()
	}
	targetInfo, statError := os.Stat(childPath)
	if statError != nil {
		return false
	}
	return targetInfo.IsDir()
}

// Package config loads application defaults and the .gitignore matcher used during scans.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	gitignore "github.com/monochromegane/go-gitignore"

	"github.com/temirov/dirtree/internal/utils"
)

// LoadIgnoreMatcher parses the .gitignore file at the root of rootDirectoryPath.
// Patterns are anchored at rootDirectoryPath, so the matcher expects paths joined
// onto that same root. A missing file yields a nil matcher.
//
// #nosec G304
func LoadIgnoreMatcher(rootDirectoryPath string) (gitignore.IgnoreMatcher, error) {
	ignoreFilePath := filepath.Join(rootDirectoryPath, utils.GitIgnoreFileName)
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading %s from %s: %w", utils.GitIgnoreFileName, rootDirectoryPath, openFileError)
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", ignoreFilePath, closeError)
		}
	}()
	return gitignore.NewGitIgnoreFromReader(rootDirectoryPath, fileHandle), nil
}

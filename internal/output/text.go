package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/temirov/dirtree/internal/types"
)

const (
	// treeIndentPrefix is repeated once per level in front of every line.
	treeIndentPrefix = "│   "
	// treeBranchMarker precedes every name. The last child is not drawn differently.
	treeBranchMarker = "├── "
	// fileSizeSuffixFormat is appended to file lines that carry a size.
	fileSizeSuffixFormat = " (%d bytes)"
)

// RenderText writes the directory as an indented text tree starting at level.
// A directory's files are printed right after its own line, before its subdirectories.
func RenderText(writer io.Writer, directory *types.Directory, level int) error {
	if directory == nil {
		return nil
	}
	if _, err := fmt.Fprintln(writer, strings.Repeat(treeIndentPrefix, level)+treeBranchMarker+directory.Name); err != nil {
		return err
	}
	fileIndent := strings.Repeat(treeIndentPrefix, level+1)
	for _, fileEntry := range directory.Files {
		if _, err := fmt.Fprintln(writer, fileIndent+treeBranchMarker+fileEntry.Name+fileSizeSuffix(fileEntry)); err != nil {
			return err
		}
	}
	for _, subdirectory := range directory.Subdirectories {
		if err := RenderText(writer, subdirectory, level+1); err != nil {
			return err
		}
	}
	return nil
}

// RenderTextString renders the whole tree into a string.
func RenderTextString(directory *types.Directory) string {
	var builder strings.Builder
	_ = RenderText(&builder, directory, 0)
	return builder.String()
}

func fileSizeSuffix(fileEntry types.FileEntry) string {
	if !fileEntry.HasSize() {
		return ""
	}
	return fmt.Sprintf(fileSizeSuffixFormat, *fileEntry.Size)
}

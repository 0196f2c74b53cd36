package output_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/temirov/dirtree/internal/output"
	"github.com/temirov/dirtree/internal/types"
)

func sampleTree() *types.Directory {
	return &types.Directory{
		Name: "root",
		Files: []types.FileEntry{
			types.NewFileEntry("file1.txt", "root/file1.txt").WithSize(13),
			types.NewFileEntry("notes.md", "root/notes.md"),
		},
		Subdirectories: []*types.Directory{
			{
				Name:  "subdir1",
				Files: []types.FileEntry{types.NewFileEntry("file2.txt", "root/subdir1/file2.txt").WithSize(14)},
				Subdirectories: []*types.Directory{
					{Name: "deep"},
				},
			},
			{Name: "subdir2"},
		},
	}
}

// TestRenderTextMatchesLayout verifies prefixes, ordering and size suffixes line by line.
func TestRenderTextMatchesLayout(testingHandle *testing.T) {
	var buffer bytes.Buffer
	if err := output.RenderText(&buffer, sampleTree(), 0); err != nil {
		testingHandle.Fatalf("RenderText error: %v", err)
	}
	expected := strings.Join([]string{
		"├── root",
		"│   ├── file1.txt (13 bytes)",
		"│   ├── notes.md",
		"│   ├── subdir1",
		"│   │   ├── file2.txt (14 bytes)",
		"│   │   ├── deep",
		"│   ├── subdir2",
	}, "\n") + "\n"
	if buffer.String() != expected {
		testingHandle.Fatalf("unexpected rendering:\n%s\nexpected:\n%s", buffer.String(), expected)
	}
}

// TestRenderTextStartsAtLevel verifies the starting level indents every line.
func TestRenderTextStartsAtLevel(testingHandle *testing.T) {
	var buffer bytes.Buffer
	directory := &types.Directory{Name: "inner", Files: []types.FileEntry{types.NewFileEntry("a", "")}}
	if err := output.RenderText(&buffer, directory, 2); err != nil {
		testingHandle.Fatalf("RenderText error: %v", err)
	}
	expected := "│   │   ├── inner\n│   │   │   ├── a\n"
	if buffer.String() != expected {
		testingHandle.Fatalf("expected %q, got %q", expected, buffer.String())
	}
}

// TestRenderTextStringReportsSize verifies a recorded size is shown in bytes.
func TestRenderTextStringReportsSize(testingHandle *testing.T) {
	rendered := output.RenderTextString(sampleTree())
	if !strings.Contains(rendered, "(13 bytes)") {
		testingHandle.Fatalf("expected size suffix in %q", rendered)
	}
	if strings.Contains(rendered, "notes.md (") {
		testingHandle.Fatalf("expected no size suffix for a file without size in %q", rendered)
	}
}

// TestRenderTextIgnoresNilDirectory verifies nothing is written for a missing tree.
func TestRenderTextIgnoresNilDirectory(testingHandle *testing.T) {
	var buffer bytes.Buffer
	if err := output.RenderText(&buffer, nil, 0); err != nil {
		testingHandle.Fatalf("RenderText error: %v", err)
	}
	if buffer.Len() != 0 {
		testingHandle.Fatalf("expected empty output, got %q", buffer.String())
	}
}

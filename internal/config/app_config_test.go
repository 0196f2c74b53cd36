package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/dirtree/internal/utils"
)

type configTestCase struct {
	name            string
	globalContent   string
	localContent    string
	explicitPath    string
	explicitContent string
	expectFiles     *bool
	expectSize      *bool
	expectExtension string
	expectMaxDepth  *int
	expectGitignore *bool
	expectCopy      *bool
}

func boolPointer(value bool) *bool {
	pointer := value
	return &pointer
}

func intPointer(value int) *int {
	pointer := value
	return &pointer
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	testCases := []configTestCase{
		{
			name:            "local_overrides_global",
			globalContent:   "tree:\n  files: false\n  size: true\n  extension: .md\n  max_depth: 4\n",
			localContent:    "tree:\n  files: true\n  extension: .go\n  copy: true\n",
			expectFiles:     boolPointer(true),
			expectSize:      boolPointer(true),
			expectExtension: ".go",
			expectMaxDepth:  intPointer(4),
			expectCopy:      boolPointer(true),
		},
		{
			name:            "explicit_path_replaces_local",
			globalContent:   "tree:\n  gitignore: false\n",
			localContent:    "tree:\n  max_depth: 9\n",
			explicitPath:    "custom.yaml",
			explicitContent: "tree:\n  gitignore: true\n  max_depth: 2\n",
			expectMaxDepth:  intPointer(2),
			expectGitignore: boolPointer(true),
		},
		{
			name: "no_files_yields_empty_configuration",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDir := t.TempDir()
			workingDir := t.TempDir()
			configDir := filepath.Join(homeDir, utils.GlobalConfigDirectoryName)
			if err := os.MkdirAll(configDir, 0o755); err != nil {
				t.Fatalf("create config dir: %v", err)
			}
			if testCase.globalContent != "" {
				globalPath := filepath.Join(configDir, utils.GlobalConfigFileName)
				if err := os.WriteFile(globalPath, []byte(testCase.globalContent), 0o600); err != nil {
					t.Fatalf("write global config: %v", err)
				}
			}
			if testCase.localContent != "" {
				localPath := filepath.Join(workingDir, utils.LocalConfigFileName)
				if err := os.WriteFile(localPath, []byte(testCase.localContent), 0o600); err != nil {
					t.Fatalf("write local config: %v", err)
				}
			}
			if testCase.explicitPath != "" {
				target := filepath.Join(workingDir, testCase.explicitPath)
				if err := os.WriteFile(target, []byte(testCase.explicitContent), 0o600); err != nil {
					t.Fatalf("write explicit config: %v", err)
				}
			}

			t.Setenv("HOME", homeDir)
			t.Setenv("USERPROFILE", homeDir)

			loadedConfig, err := LoadApplicationConfiguration(LoadOptions{
				WorkingDirectory: workingDir,
				ExplicitFilePath: testCase.explicitPath,
			})
			if err != nil {
				t.Fatalf("LoadApplicationConfiguration error: %v", err)
			}
			tree := loadedConfig.Tree
			assertBoolPointer(t, "files", testCase.expectFiles, tree.Files)
			assertBoolPointer(t, "size", testCase.expectSize, tree.Size)
			assertBoolPointer(t, "gitignore", testCase.expectGitignore, tree.Gitignore)
			assertBoolPointer(t, "copy", testCase.expectCopy, tree.Clipboard)
			if tree.Extension != testCase.expectExtension {
				t.Fatalf("expected extension %q, got %q", testCase.expectExtension, tree.Extension)
			}
			if (testCase.expectMaxDepth == nil) != (tree.MaxDepth == nil) {
				t.Fatalf("expected max depth %v, got %v", testCase.expectMaxDepth, tree.MaxDepth)
			}
			if testCase.expectMaxDepth != nil && *testCase.expectMaxDepth != *tree.MaxDepth {
				t.Fatalf("expected max depth %d, got %d", *testCase.expectMaxDepth, *tree.MaxDepth)
			}
		})
	}
}

func TestLoadApplicationConfigurationRejectsMissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("USERPROFILE", t.TempDir())
	_, err := LoadApplicationConfiguration(LoadOptions{
		WorkingDirectory: t.TempDir(),
		ExplicitFilePath: "absent.yaml",
	})
	if err == nil {
		t.Fatalf("expected an error for a missing explicit configuration file")
	}
}

func TestLoadApplicationConfigurationRejectsMalformedFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("USERPROFILE", t.TempDir())
	workingDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(workingDir, utils.LocalConfigFileName), []byte("tree: [unterminated\n"), 0o600); err != nil {
		t.Fatalf("write local config: %v", err)
	}
	if _, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDir}); err == nil {
		t.Fatalf("expected an error for malformed configuration")
	}
}

func assertBoolPointer(t *testing.T, label string, expected *bool, actual *bool) {
	t.Helper()
	if (expected == nil) != (actual == nil) {
		t.Fatalf("%s: expected %v, got %v", label, expected, actual)
	}
	if expected != nil && *expected != *actual {
		t.Fatalf("%s: expected %t, got %t", label, *expected, *actual)
	}
}

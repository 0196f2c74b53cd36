package commands

import (
	gitignore "github.com/monochromegane/go-gitignore"
	"go.uber.org/zap"
)

// TreeBuilder builds directory trees using configured options.
type TreeBuilder struct {
	// MaxDepth limits recursion when set. The root is level zero.
	MaxDepth *int
	// ShowFiles includes file entries; without it only directories are collected.
	ShowFiles bool
	// Extension keeps only files whose names end with it. Empty keeps every file.
	Extension string
	// ShowSize records the byte size of each included file.
	ShowSize bool
	// IgnoreMatcher skips matching entries when set.
	IgnoreMatcher gitignore.IgnoreMatcher
	// Logger receives debug messages about swallowed errors.
	Logger *zap.Logger
}

// NewTreeBuilder returns a builder that collects directories only, without a depth limit.
func NewTreeBuilder(logger *zap.Logger) *TreeBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TreeBuilder{Logger: logger}
}

// WithMaxDepth sets the depth limit and returns the builder.
func (treeBuilder *TreeBuilder) WithMaxDepth(maxDepth int) *TreeBuilder {
	depthLimit := maxDepth
	treeBuilder.MaxDepth = &depthLimit
	return treeBuilder
}

func (treeBuilder *TreeBuilder) logger() *zap.Logger {
	if treeBuilder.Logger == nil {
		return zap.NewNop()
	}
	return treeBuilder.Logger
}

func (treeBuilder *TreeBuilder) depthReached(level int) bool {
	return treeBuilder.MaxDepth != nil && level >= *treeBuilder.MaxDepth
}

func (treeBuilder *TreeBuilder) isIgnored(childPath string, isDirectory bool) bool {
	return treeBuilder.IgnoreMatcher != nil && treeBuilder.IgnoreMatcher.Match(childPath, isDirectory)
}

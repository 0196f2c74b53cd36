package utils_test

import (
	"testing"

	"go.uber.org/zap"

	"github.com/temirov/dirtree/internal/utils"
)

func TestNewApplicationLoggerFollowsAtomicLevel(t *testing.T) {
	logLevel := zap.NewAtomicLevelAt(zap.InfoLevel)
	logger, err := utils.NewApplicationLogger(logLevel)
	if err != nil {
		t.Fatalf("NewApplicationLogger error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if logger.Core().Enabled(zap.DebugLevel) {
		t.Fatalf("expected debug to be disabled at info level")
	}
	logLevel.SetLevel(zap.DebugLevel)
	if !logger.Core().Enabled(zap.DebugLevel) {
		t.Fatalf("expected debug to be enabled after lowering the level")
	}
}

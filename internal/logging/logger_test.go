package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewFileLogger_EmptyPathIsNop(t *testing.T) {
	log, err := NewFileLogger("", "debug")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log.Info("discarded", "key", "value")
}

func TestNewFileLogger_WritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "filtergrid.log")

	log, err := NewFileLogger(path, "info")
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	log.Debug("hidden")
	log.Info("filter changed", "column", 3)
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, `"msg":"filter changed"`) {
		t.Errorf("expected info entry, got %s", content)
	}
	if !strings.Contains(content, `"column":3`) {
		t.Errorf("expected column field, got %s", content)
	}
	if strings.Contains(content, "hidden") {
		t.Error("debug entry should be filtered at info level")
	}
}

func TestParseLevel(t *testing.T) {
	if parseLevel("DEBUG") != zapcore.DebugLevel {
		t.Error("expected debug level")
	}
	if parseLevel("bogus") != zapcore.InfoLevel {
		t.Error("expected info fallback")
	}
}

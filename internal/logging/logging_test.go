package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewWithoutPathIsNop(t *testing.T) {
	logger, err := New("")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if logger.Core().Enabled(zap.DebugLevel) {
		t.Fatalf("expected no-op logger")
	}
}

func TestNewWritesDebugToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "kanjiq.log")
	logger, err := New(path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Debug("record picked", zap.String("character", "日"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"record picked"`) || !strings.Contains(string(data), `"character":"日"`) {
		t.Fatalf("unexpected log content: %s", data)
	}
}

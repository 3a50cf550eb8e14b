package diag_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ringel-ai/admitchat/internal/diag"
)

func TestEmit_WritesJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "diag.log")
	diag.Init(path)
	defer diag.Init("")

	diag.Emit("save_failed", map[string]any{"path": "x.json"})
	diag.Warn("load degraded", os.ErrNotExist)

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), string(b))
	}
	if !strings.Contains(lines[0], `"event":"save_failed"`) {
		t.Errorf("missing event field: %s", lines[0])
	}
	if !strings.Contains(lines[1], "load degraded") {
		t.Errorf("missing warn message: %s", lines[1])
	}
}

func TestDisabledSink_NoOp(t *testing.T) {
	diag.Init("")
	// Must not panic or create files anywhere.
	diag.Emit("noop", nil)
	diag.Warn("noop", nil)
}

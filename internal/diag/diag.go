// Package diag is the process-wide diagnostic sink.
//
// All recovered failures (storage, transport, tool formatting) are reported
// here and nowhere else; nothing in this package may surface an error back
// to callers. Output is structured JSON lines via zerolog, written to a log
// file so the terminal stays owned by the UI. Until Init is called, or when
// Init is given an empty path, every call is a no-op.
package diag

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.Mutex
	logger = zerolog.Nop()
)

// Init routes diagnostics to a JSONL file at path, creating parent
// directories as needed. An empty path disables the sink. Init never fails
// the caller; if the file cannot be opened the sink stays disabled.
func Init(path string) {
	mu.Lock()
	defer mu.Unlock()
	if path == "" {
		logger = zerolog.Nop()
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	logger = zerolog.New(f).With().Timestamp().Logger()
}

// Emit records a named event with structured fields.
func Emit(name string, fields map[string]any) {
	mu.Lock()
	l := logger
	mu.Unlock()
	l.Info().Fields(fields).Str("event", name).Msg("")
}

// Warn records a recovered failure with its cause.
func Warn(msg string, err error) {
	mu.Lock()
	l := logger
	mu.Unlock()
	ev := l.Warn()
	if err != nil {
		ev = ev.Err(err)
	}
	ev.Msg(msg)
}

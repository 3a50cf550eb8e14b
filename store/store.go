// Package store persists the conversation snapshot to a single local slot.
//
// The slot is one JSON document, {"messages": [...], "durations": {...}},
// written whole on every save. Load never fails: a missing file, unreadable
// bytes, or a foreign-shaped record all degrade to the empty document after
// a report to the diagnostic sink. Save is best-effort for the same reason;
// losing a write must never take the session down.
package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/ringel-ai/admitchat/chat"
	"github.com/ringel-ai/admitchat/internal/diag"
)

// Document is the durable snapshot of transcript plus duration ledger.
type Document struct {
	Messages  []chat.Message `json:"messages"`
	Durations chat.Durations `json:"durations"`
}

// Empty returns the zero snapshot used whenever no usable record exists.
func Empty() Document {
	return Document{Messages: []chat.Message{}, Durations: chat.Durations{}}
}

// Store reads and writes the document at a fixed file path. A Store with an
// empty path is disabled: Load yields the empty document and Save is a no-op.
// That covers contexts with no durable slot at all, mirroring how the
// browser original behaved without a window object.
type Store struct {
	path string
}

// New returns a store backed by the file at path; empty path disables it.
func New(path string) *Store {
	return &Store{path: path}
}

// Enabled reports whether the store is backed by a real slot.
func (s *Store) Enabled() bool { return s.path != "" }

// Load reads the persisted document. Any failure degrades to Empty().
func (s *Store) Load() Document {
	if s.path == "" {
		return Empty()
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			diag.Warn("store: read failed, starting empty", err)
		}
		return Empty()
	}
	if !gjson.ValidBytes(b) {
		diag.Emit("store_corrupt", map[string]any{"path": s.path, "bytes": len(b)})
		return Empty()
	}

	doc := Empty()
	// Fields are pulled out individually so one bad or missing field never
	// poisons the other.
	if msgs := gjson.GetBytes(b, "messages"); msgs.IsArray() {
		var parsed []chat.Message
		if err := json.Unmarshal([]byte(msgs.Raw), &parsed); err != nil {
			diag.Warn("store: messages field unreadable, dropped", err)
		} else {
			doc.Messages = parsed
		}
	}
	if durs := gjson.GetBytes(b, "durations"); durs.IsObject() {
		var parsed chat.Durations
		if err := json.Unmarshal([]byte(durs.Raw), &parsed); err != nil {
			diag.Warn("store: durations field unreadable, dropped", err)
		} else {
			doc.Durations = parsed
		}
	}
	if doc.Messages == nil {
		doc.Messages = []chat.Message{}
	}
	if doc.Durations == nil {
		doc.Durations = chat.Durations{}
	}
	return doc
}

// Save writes the document, replacing the previous record. Failures are
// swallowed after reporting; the in-memory state stays authoritative.
func (s *Store) Save(doc Document) {
	if s.path == "" {
		return
	}
	msgs := doc.Messages
	if msgs == nil {
		msgs = []chat.Message{}
	}
	durs := doc.Durations
	if durs == nil {
		durs = chat.Durations{}
	}

	msgsRaw, err := json.Marshal(msgs)
	if err != nil {
		diag.Warn("store: marshal messages failed, save dropped", err)
		return
	}
	dursRaw, err := json.Marshal(durs)
	if err != nil {
		diag.Warn("store: marshal durations failed, save dropped", err)
		return
	}
	out, err := sjson.SetRawBytes([]byte(`{}`), "messages", msgsRaw)
	if err == nil {
		out, err = sjson.SetRawBytes(out, "durations", dursRaw)
	}
	if err != nil {
		diag.Warn("store: assemble document failed, save dropped", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		diag.Warn("store: mkdir failed, save dropped", err)
		return
	}
	if err := os.WriteFile(s.path, out, 0o644); err != nil {
		diag.Warn("store: write failed, save dropped", err)
	}
}

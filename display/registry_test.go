package display_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ringel-ai/admitchat/chat"
	"github.com/ringel-ai/admitchat/display"
)

func TestExtractToolName_TypeTagWins(t *testing.T) {
	p := chat.Part{Type: "tool-webSearch", ToolName: "somethingElse"}
	name, ok := display.ExtractToolName(p)
	if !ok || name != "webSearch" {
		t.Fatalf("got %q %t, want webSearch", name, ok)
	}
}

func TestExtractToolName_ToolNameFallback(t *testing.T) {
	p := chat.Part{Type: "dynamic-tool", ToolName: "readSyllabus"}
	name, ok := display.ExtractToolName(p)
	if !ok || name != "readSyllabus" {
		t.Fatalf("got %q %t, want readSyllabus", name, ok)
	}
}

func TestExtractToolName_Absent(t *testing.T) {
	if name, ok := display.ExtractToolName(chat.TextPart("hi")); ok {
		t.Fatalf("text part yielded identifier %q", name)
	}
	// A bare "tool-" tag carries no identifier either.
	if name, ok := display.ExtractToolName(chat.Part{Type: "tool-"}); ok {
		t.Fatalf("empty identifier accepted: %q", name)
	}
}

func TestResolve_KnownTools(t *testing.T) {
	cases := []struct {
		name        string
		callLabel   string
		resultLabel string
	}{
		{"readNotebookLecture", "Reading lecture notebook", "Read lecture notebook"},
		{"readSlideLecture", "Reading slide lecture", "Read slide lecture"},
		{"readSyllabus", "Reading syllabus", "Read syllabus"},
		{"readAssignment", "Reading assignment", "Read assignment"},
		{"webSearch", "Searching the web", "Searched the web"},
	}
	for _, tc := range cases {
		d := display.Resolve(tc.name)
		if d.CallLabel != tc.callLabel || d.ResultLabel != tc.resultLabel {
			t.Errorf("%s: got %q/%q want %q/%q", tc.name, d.CallLabel, d.ResultLabel, tc.callLabel, tc.resultLabel)
		}
	}
}

func TestResolve_UnknownFallsBackToDefault(t *testing.T) {
	d := display.Resolve("mysteryTool")
	def := display.Default()
	if d.CallLabel != def.CallLabel || d.ResultLabel != def.ResultLabel {
		t.Fatalf("unknown tool did not fall back: %+v", d)
	}
	if def.CallLabel != "Searching" || def.ResultLabel != "Searched" {
		t.Fatalf("unexpected default labels: %+v", def)
	}
}

func TestFormatArgs_WebSearchQuery(t *testing.T) {
	d := display.Resolve("webSearch")
	got := display.FormatArgs(d, json.RawMessage(`{"query":"fees and scholarships"}`))
	if got != "fees and scholarships" {
		t.Fatalf("got %q", got)
	}
	// Wrong shape degrades to empty, never errors.
	if got := display.FormatArgs(d, json.RawMessage(`"not an object"`)); got != "" {
		t.Fatalf("wrong shape: got %q want empty", got)
	}
	// An empty query renders nothing, like the browser client's loose check.
	if got := display.FormatArgs(d, json.RawMessage(`{"query":""}`)); got != "" {
		t.Fatalf("empty query: got %q want empty", got)
	}
}

func TestFormatArgs_ClassNumber(t *testing.T) {
	d := display.Resolve("readSlideLecture")
	if got := display.FormatArgs(d, json.RawMessage(`{"class_no":4}`)); got != "Class 4" {
		t.Fatalf("got %q want %q", got, "Class 4")
	}
	if got := display.FormatArgs(d, json.RawMessage(`{}`)); got != "" {
		t.Fatalf("missing field: got %q want empty", got)
	}
	// Zero is suppressed the way the browser client's loose check did it.
	if got := display.FormatArgs(d, json.RawMessage(`{"class_no":0}`)); got != "" {
		t.Fatalf("zero class: got %q want empty", got)
	}
}

func TestFormatArgs_DefaultHeuristic(t *testing.T) {
	def := display.Default()

	if got := display.FormatArgs(def, json.RawMessage(`{"query":"deadlines"}`)); got != "deadlines" {
		t.Errorf("query field: got %q", got)
	}

	long := strings.Repeat("a", 150)
	got := display.FormatArgs(def, json.RawMessage(`{"hypothetical_document":"`+long+`"}`))
	if len(got) != 100 {
		t.Errorf("long text prefix: got len %d want 100", len(got))
	}

	if got := display.FormatArgs(def, json.RawMessage(`{"other":1}`)); got != "Arguments not available" {
		t.Errorf("unrecognized shape: got %q", got)
	}
	// An empty query is not a usable argument; fall through to the fallback.
	if got := display.FormatArgs(def, json.RawMessage(`{"query":""}`)); got != "Arguments not available" {
		t.Errorf("empty query: got %q", got)
	}
	if got := display.FormatArgs(def, nil); got != "Arguments not available" {
		t.Errorf("nil input: got %q", got)
	}
}

package tools_test

import (
	"testing"

	"github.com/ringel-ai/admitchat/internal/kb"
	"github.com/ringel-ai/admitchat/tools"
)

func testLibrary(t *testing.T) *kb.Library {
	t.Helper()
	lib, err := kb.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open library: %v", err)
	}
	return lib
}

func TestRegistry_ToolNames(t *testing.T) {
	defs := tools.Registry(testLibrary(t))
	want := map[string]struct{}{
		"readNotebookLecture": {},
		"readSlideLecture":    {},
		"readSyllabus":        {},
		"readAssignment":      {},
		"webSearch":           {},
	}
	if len(defs) != len(want) {
		t.Fatalf("unexpected number of tools: got %d want %d", len(defs), len(want))
	}
	for _, d := range defs {
		if _, ok := want[d.Name]; !ok {
			t.Errorf("unexpected tool in registry: %q", d.Name)
		}
		if d.Function == nil {
			t.Errorf("%s: nil handler", d.Name)
		}
		if d.Description == "" {
			t.Errorf("%s: empty description", d.Name)
		}
	}
}

func TestGenerateSchema_ExposesProperties(t *testing.T) {
	schema := tools.WebSearchInputSchema
	if schema.Properties == nil {
		t.Fatalf("expected schema properties for WebSearchInput")
	}
}

// Package display maps tool identifiers to presentation metadata.
//
// The registry is a closed, process-wide table consulted by the rendering
// layer whenever a transcript part is a tool call or result. Unknown
// identifiers resolve to a generic default; argument formatters never fail,
// they degrade to an empty string. Nothing here has side effects.
package display

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/ringel-ai/admitchat/chat"
)

// Formatter renders a tool's structured input as a short display string.
type Formatter func(input json.RawMessage) string

// Descriptor is the static presentation metadata for one tool.
type Descriptor struct {
	CallLabel   string
	CallIcon    string
	ResultLabel string
	ResultIcon  string
	FormatArgs  Formatter
}

const (
	iconBook         = "📖"
	iconPresentation = "📊"
	iconSearch       = "🔍"
	iconGlobe        = "🌐"
)

// truthy mirrors the loose boolean the browser client applied to argument
// values: null, false, 0, and "" all suppress the rendering.
func truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		return v.Str != ""
	default:
		return true
	}
}

func formatQueryArg(input json.RawMessage) string {
	if v := gjson.GetBytes(input, "query"); truthy(v) {
		return v.String()
	}
	return ""
}

func formatClassArg(input json.RawMessage) string {
	v := gjson.GetBytes(input, "class_no")
	if !truthy(v) {
		return ""
	}
	return fmt.Sprintf("Class %s", v.String())
}

var registry = map[string]Descriptor{
	"readNotebookLecture": {
		CallLabel:   "Reading lecture notebook",
		CallIcon:    iconBook,
		ResultLabel: "Read lecture notebook",
		ResultIcon:  iconBook,
		FormatArgs:  formatClassArg,
	},
	"readSlideLecture": {
		CallLabel:   "Reading slide lecture",
		CallIcon:    iconPresentation,
		ResultLabel: "Read slide lecture",
		ResultIcon:  iconPresentation,
		FormatArgs:  formatClassArg,
	},
	"readSyllabus": {
		CallLabel:   "Reading syllabus",
		CallIcon:    iconBook,
		ResultLabel: "Read syllabus",
		ResultIcon:  iconBook,
	},
	"readAssignment": {
		CallLabel:   "Reading assignment",
		CallIcon:    iconBook,
		ResultLabel: "Read assignment",
		ResultIcon:  iconBook,
	},
	"webSearch": {
		CallLabel:   "Searching the web",
		CallIcon:    iconSearch,
		ResultLabel: "Searched the web",
		ResultIcon:  iconSearch,
		FormatArgs:  formatQueryArg,
	},
}

var defaultDescriptor = Descriptor{
	CallLabel:   "Searching",
	CallIcon:    iconGlobe,
	ResultLabel: "Searched",
	ResultIcon:  iconGlobe,
}

// Default returns the fallback descriptor used for unknown tools.
func Default() Descriptor { return defaultDescriptor }

// Resolve returns the descriptor for name, or the default when unknown.
func Resolve(name string) Descriptor {
	if d, ok := registry[name]; ok {
		return d
	}
	return defaultDescriptor
}

// ExtractToolName determines the tool identifier for a tool part: first from
// a "tool-<name>" type tag, then from an explicit toolName field. Callers
// getting ok=false fall back to the default descriptor.
func ExtractToolName(p chat.Part) (string, bool) {
	if rest, found := strings.CutPrefix(p.Type, "tool-"); found && rest != "" {
		return rest, true
	}
	if p.ToolName != "" {
		return p.ToolName, true
	}
	return "", false
}

// maxFreeTextArg caps long free-text arguments in the default heuristic.
const maxFreeTextArg = 100

// FormatArgs renders a tool part's input. A per-tool formatter wins when the
// descriptor has one; otherwise a shape-sniffing default applies. Either way
// the result is display-safe: failures collapse to "".
func FormatArgs(d Descriptor, input json.RawMessage) (out string) {
	defer func() {
		if recover() != nil {
			out = ""
		}
	}()
	if d.FormatArgs != nil {
		return d.FormatArgs(input)
	}
	return defaultFormatArgs(input)
}

func defaultFormatArgs(input json.RawMessage) string {
	if len(input) == 0 {
		return "Arguments not available"
	}
	parsed := gjson.ParseBytes(input)
	if !parsed.IsObject() {
		// Mirror the scalar passthrough of the original client.
		return parsed.String()
	}
	if q := parsed.Get("query"); truthy(q) {
		return q.String()
	}
	if h := parsed.Get("hypothetical_document"); truthy(h) {
		r := []rune(h.String())
		if len(r) > maxFreeTextArg {
			r = r[:maxFreeTextArg]
		}
		return string(r)
	}
	return "Arguments not available"
}

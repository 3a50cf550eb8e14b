package chat

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// Role values carried by Message.Role.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// PartTypeText is the type tag for plain text parts. Tool parts carry a
// "tool-<name>" type tag instead; see ToolCallPart.
const PartTypeText = "text"

const toolTypePrefix = "tool-"

// Part is one typed fragment of a message.
//
// Text parts have Type "text" and a Text payload. Tool parts have Type
// "tool-<name>" with the structured Input the model supplied; once the tool
// has run, Output holds its result and the part reads as a tool result.
// ToolName is a fallback identifier written by older records where the type
// tag does not embed the name.
type Part struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	ToolName string          `json:"toolName,omitempty"`
	Input    json.RawMessage `json:"input,omitempty"`
	Output   json.RawMessage `json:"output,omitempty"`
}

// TextPart returns a text fragment.
func TextPart(text string) Part {
	return Part{Type: PartTypeText, Text: text}
}

// ToolCallPart returns an in-flight tool invocation fragment for the named tool.
func ToolCallPart(name string, input json.RawMessage) Part {
	return Part{Type: toolTypePrefix + name, Input: cloneRaw(input)}
}

// ToolResultPart returns a completed tool invocation fragment, keeping the
// originating input alongside the output.
func ToolResultPart(name string, input, output json.RawMessage) Part {
	return Part{Type: toolTypePrefix + name, Input: cloneRaw(input), Output: cloneRaw(output)}
}

// IsText reports whether the part is a plain text fragment.
func (p Part) IsText() bool { return p.Type == PartTypeText }

// IsTool reports whether the part represents a tool invocation in any state.
func (p Part) IsTool() bool {
	return strings.HasPrefix(p.Type, toolTypePrefix) || p.ToolName != ""
}

// IsToolCall reports an in-flight tool invocation (no output yet).
func (p Part) IsToolCall() bool { return p.IsTool() && len(p.Output) == 0 }

// IsToolResult reports a completed tool invocation.
func (p Part) IsToolResult() bool { return p.IsTool() && len(p.Output) > 0 }

// Message is one transcript entry.
type Message struct {
	ID    string `json:"id"`
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// NewUserMessage returns a user message with a single text part and a fresh id.
func NewUserMessage(text string) Message {
	return Message{ID: uuid.NewString(), Role: RoleUser, Parts: []Part{TextPart(text)}}
}

// NewAssistantMessage returns an assistant message with the given parts and a fresh id.
func NewAssistantMessage(parts ...Part) Message {
	return Message{ID: uuid.NewString(), Role: RoleAssistant, Parts: parts}
}

// Text concatenates the message's text parts in order, joined by newlines.
func (m Message) Text() string {
	var b strings.Builder
	for _, p := range m.Parts {
		if !p.IsText() || p.Text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(p.Text)
	}
	return b.String()
}

// AppendText extends the trailing text part with delta, or appends a new text
// part when the last part is not text. Used to apply streamed deltas.
func (m *Message) AppendText(delta string) {
	if delta == "" {
		return
	}
	if n := len(m.Parts); n > 0 && m.Parts[n-1].IsText() {
		m.Parts[n-1].Text += delta
		return
	}
	m.Parts = append(m.Parts, TextPart(delta))
}

// Clone returns a deep copy; mutating the copy never affects the original.
func (m Message) Clone() Message {
	out := Message{ID: m.ID, Role: m.Role}
	if m.Parts != nil {
		out.Parts = make([]Part, len(m.Parts))
		for i, p := range m.Parts {
			p.Input = cloneRaw(p.Input)
			p.Output = cloneRaw(p.Output)
			out.Parts[i] = p
		}
	}
	return out
}

// CloneMessages deep-copies a transcript slice.
func CloneMessages(msgs []Message) []Message {
	if msgs == nil {
		return nil
	}
	out := make([]Message, len(msgs))
	for i, m := range msgs {
		out[i] = m.Clone()
	}
	return out
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out
}

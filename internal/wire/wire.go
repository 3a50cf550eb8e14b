// Package wire converts the persisted transcript into Anthropic request
// messages and trims the result to a token budget without splitting
// tool_use/tool_result pairs.
package wire

import (
	"github.com/anthropics/anthropic-sdk-go"

	"github.com/ringel-ai/admitchat/chat"
)

// FromTranscript rebuilds API context from the stored transcript. Historical
// context is text-only: tool parts and empty messages are skipped, so a
// reloaded session resumes with the readable conversation rather than replayed
// tool traffic. System-role messages are configuration, not context.
func FromTranscript(msgs []chat.Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(msgs))
	for _, m := range msgs {
		text := m.Text()
		if text == "" {
			continue
		}
		switch m.Role {
		case chat.RoleUser:
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(text)))
		case chat.RoleAssistant:
			out = append(out, anthropic.NewAssistantMessage(anthropic.NewTextBlock(text)))
		}
	}
	return out
}

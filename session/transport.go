package session

import (
	"context"
	"encoding/json"

	"github.com/ringel-ai/admitchat/chat"
)

// EventKind tags a transport event.
type EventKind int

const (
	// EventStarted announces the assistant message id for this exchange.
	EventStarted EventKind = iota
	// EventTextDelta carries an incremental text fragment.
	EventTextDelta
	// EventToolCall announces a tool invocation the model requested.
	EventToolCall
	// EventToolResult carries the output of a completed tool invocation.
	EventToolResult
	// EventDone marks logical completion of the exchange.
	EventDone
	// EventFailed marks transport failure; Err holds the cause.
	EventFailed
)

// Event is one ordered update from the streaming transport. The controller
// is the single consumer and applies events in arrival order.
type Event struct {
	Kind      EventKind
	MessageID string
	Text      string
	ToolName  string
	Input     json.RawMessage
	Output    json.RawMessage
	Err       error
}

// Transport produces the streaming exchange with the model backend. Stream
// returns immediately with a channel that is closed once the exchange ends
// for any reason; cancelling ctx abandons the exchange upstream.
type Transport interface {
	Stream(ctx context.Context, transcript []chat.Message) <-chan Event
}

package runner

import (
	"context"
	"encoding/json"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/google/uuid"

	"github.com/ringel-ai/admitchat/chat"
	"github.com/ringel-ai/admitchat/internal/diag"
	"github.com/ringel-ai/admitchat/internal/wire"
	"github.com/ringel-ai/admitchat/session"
	"github.com/ringel-ai/admitchat/tools"
)

// maxResponseTokens caps a single assistant response.
const maxResponseTokens = int64(1024)

// eventBuffer smooths bursts of deltas without letting the producer run
// unbounded ahead of the controller.
const eventBuffer = 32

// Runner is the streaming transport behind the session controller: it turns
// one submitted exchange into Anthropic streaming calls, executes tool calls
// mid-exchange, and emits ordered session events.
type Runner struct {
	client *anthropic.Client
	model  anthropic.Model
	system string
	tools  []tools.Definition
	budget int
}

// New returns a runner. budget caps the estimated size of the context window
// sent per step; <= 0 disables trimming.
func New(client *anthropic.Client, model anthropic.Model, system string, defs []tools.Definition, budget int) *Runner {
	return &Runner{client: client, model: model, system: system, tools: defs, budget: budget}
}

// Stream implements session.Transport.
func (r *Runner) Stream(ctx context.Context, transcript []chat.Message) <-chan session.Event {
	ch := make(chan session.Event, eventBuffer)
	go r.run(ctx, transcript, ch)
	return ch
}

func (r *Runner) anthropicTools() []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, anthropic.ToolUnionParam{OfTool: &anthropic.ToolParam{
			Name:        t.Name,
			Description: anthropic.String(t.Description),
			InputSchema: t.InputSchema,
		}})
	}
	return out
}

func (r *Runner) run(ctx context.Context, transcript []chat.Message, ch chan<- session.Event) {
	defer close(ch)

	// emit delivers an event unless the exchange was cancelled; after
	// cancellation the controller has already moved on, so we just stop.
	emit := func(ev session.Event) bool {
		select {
		case ch <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	msgID := uuid.NewString()
	if !emit(session.Event{Kind: session.EventStarted, MessageID: msgID}) {
		return
	}

	msgs := wire.FromTranscript(transcript)
	for {
		window, stats := wire.Window(msgs, r.budget)
		diag.Emit("window_prepared", map[string]any{
			"model":     string(r.model),
			"budget":    stats.Budget,
			"estimated": stats.Estimated,
			"included":  stats.Included,
			"skipped":   stats.Skipped,
		})

		params := anthropic.MessageNewParams{
			Model:     r.model,
			MaxTokens: maxResponseTokens,
			Messages:  window,
		}
		if r.system != "" {
			params.System = []anthropic.TextBlockParam{{Text: r.system}}
		}
		if len(r.tools) > 0 {
			params.Tools = r.anthropicTools()
		}

		stream := r.client.Messages.NewStreaming(ctx, params)
		acc := anthropic.Message{}
		for stream.Next() {
			event := stream.Current()
			if err := acc.Accumulate(event); err != nil {
				emit(session.Event{Kind: session.EventFailed, Err: err})
				return
			}
			if deltaEvent, ok := event.AsAny().(anthropic.ContentBlockDeltaEvent); ok {
				if td, ok := deltaEvent.Delta.AsAny().(anthropic.TextDelta); ok && td.Text != "" {
					if !emit(session.Event{Kind: session.EventTextDelta, MessageID: msgID, Text: td.Text}) {
						return
					}
				}
			}
		}
		if err := stream.Err(); err != nil {
			if ctx.Err() != nil {
				return
			}
			emit(session.Event{Kind: session.EventFailed, Err: err})
			return
		}

		toolResults := []anthropic.ContentBlockParamUnion{}
		for _, block := range acc.Content {
			v, ok := block.AsAny().(anthropic.ToolUseBlock)
			if !ok {
				continue
			}
			input := json.RawMessage(v.JSON.Input.Raw())
			if !emit(session.Event{Kind: session.EventToolCall, MessageID: msgID, ToolName: v.Name, Input: input}) {
				return
			}
			out, isErr := r.execTool(v.Name, input)
			outRaw, err := json.Marshal(out)
			if err != nil {
				outRaw = json.RawMessage(`""`)
			}
			if !emit(session.Event{Kind: session.EventToolResult, MessageID: msgID, ToolName: v.Name, Input: input, Output: outRaw}) {
				return
			}
			toolResults = append(toolResults, anthropic.NewToolResultBlock(v.ID, out, isErr))
		}

		if len(toolResults) == 0 {
			emit(session.Event{Kind: session.EventDone, MessageID: msgID})
			return
		}
		// Keep tool_use and its tool_result adjacent for the next step.
		msgs = append(msgs, acc.ToParam(), anthropic.NewUserMessage(toolResults...))
	}
}

// execTool dispatches one tool call and reports success or an error body
// the model can read. isErr mirrors the tool_result is_error flag.
func (r *Runner) execTool(name string, input json.RawMessage) (out string, isErr bool) {
	var def *tools.Definition
	for i := range r.tools {
		if r.tools[i].Name == name {
			def = &r.tools[i]
			break
		}
	}

	start := time.Now()
	emitExec := func(outSize int, errStr string) {
		fields := map[string]any{
			"tool_name":   name,
			"duration_ms": time.Since(start).Milliseconds(),
			"input_size":  len(input),
			"output_size": outSize,
		}
		if errStr != "" {
			fields["error"] = errStr
		}
		diag.Emit("tool_exec", fields)
	}

	if def == nil {
		emitExec(0, "tool not found")
		return "tool not found", true
	}
	resp, err := def.Function(input)
	if err != nil {
		// Generic string in diagnostics; the detailed body goes to the model.
		emitExec(0, "tool error")
		return err.Error(), true
	}
	emitExec(len(resp), "")
	return resp, false
}

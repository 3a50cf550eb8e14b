package runner_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/ringel-ai/admitchat/chat"
	"github.com/ringel-ai/admitchat/internal/provider"
	"github.com/ringel-ai/admitchat/internal/runner"
	"github.com/ringel-ai/admitchat/session"
	"github.com/ringel-ai/admitchat/tools"
)

// fakeTransport serves queued HTTP responses and captures request bodies.
type fakeTransport struct {
	mu        sync.Mutex
	status    []int
	bodies    [][]byte
	mediaType string
	captured  [][]byte
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	b, _ := io.ReadAll(req.Body)
	_ = req.Body.Close()

	f.mu.Lock()
	f.captured = append(f.captured, b)
	status := 200
	var body []byte
	if len(f.bodies) > 0 {
		status = f.status[0]
		body = f.bodies[0]
		f.status = f.status[1:]
		f.bodies = f.bodies[1:]
	}
	f.mu.Unlock()

	resp := &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader(body)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", f.mediaType)
	return resp, nil
}

func (f *fakeTransport) requests() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]byte(nil), f.captured...)
}

func newClientWithTransport(rt http.RoundTripper) *anthropic.Client {
	c := anthropic.NewClient(
		option.WithHTTPClient(&http.Client{Transport: rt}),
		option.WithAPIKey("test-key"),
	)
	return &c
}

func sse(events ...[2]string) []byte {
	var b strings.Builder
	for _, ev := range events {
		b.WriteString("event: " + ev[0] + "\n")
		b.WriteString("data: " + ev[1] + "\n\n")
	}
	return []byte(b.String())
}

func textStreamBody(chunks []string, stopReason string) []byte {
	events := [][2]string{
		{"message_start", `{"type":"message_start","message":{"id":"msg_01","type":"message","role":"assistant","model":"claude-3-7-sonnet-latest","content":[],"stop_reason":null,"stop_sequence":null,"usage":{"input_tokens":10,"output_tokens":1}}}`},
		{"content_block_start", `{"type":"content_block_start","index":0,"content_block":{"type":"text","text":""}}`},
	}
	for _, c := range chunks {
		raw, _ := json.Marshal(c)
		events = append(events, [2]string{"content_block_delta", `{"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":` + string(raw) + `}}`})
	}
	events = append(events,
		[2]string{"content_block_stop", `{"type":"content_block_stop","index":0}`},
		[2]string{"message_delta", `{"type":"message_delta","delta":{"stop_reason":"` + stopReason + `","stop_sequence":null},"usage":{"output_tokens":3}}`},
		[2]string{"message_stop", `{"type":"message_stop"}`},
	)
	return sse(events...)
}

func toolUseStreamBody(toolName, partialJSON string) []byte {
	return sse(
		[2]string{"message_start", `{"type":"message_start","message":{"id":"msg_02","type":"message","role":"assistant","model":"claude-3-7-sonnet-latest","content":[],"stop_reason":null,"stop_sequence":null,"usage":{"input_tokens":10,"output_tokens":1}}}`},
		[2]string{"content_block_start", `{"type":"content_block_start","index":0,"content_block":{"type":"tool_use","id":"toolu_01","name":"` + toolName + `","input":{}}}`},
		[2]string{"content_block_delta", `{"type":"content_block_delta","index":0,"delta":{"type":"input_json_delta","partial_json":` + mustQuote(partialJSON) + `}}`},
		[2]string{"content_block_stop", `{"type":"content_block_stop","index":0}`},
		[2]string{"message_delta", `{"type":"message_delta","delta":{"stop_reason":"tool_use","stop_sequence":null},"usage":{"output_tokens":5}}`},
		[2]string{"message_stop", `{"type":"message_stop"}`},
	)
}

func mustQuote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func collectEvents(t *testing.T, ch <-chan session.Event) []session.Event {
	t.Helper()
	var out []session.Event
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-deadline:
			t.Fatalf("timed out; events so far: %+v", out)
		}
	}
}

func kinds(evs []session.Event) []session.EventKind {
	out := make([]session.EventKind, len(evs))
	for i, ev := range evs {
		out[i] = ev.Kind
	}
	return out
}

func TestStream_TextOnlyExchange(t *testing.T) {
	ft := &fakeTransport{
		status:    []int{200},
		bodies:    [][]byte{textStreamBody([]string{"Hello", " there"}, "end_turn")},
		mediaType: "text/event-stream",
	}
	r := runner.New(newClientWithTransport(ft), provider.DefaultModel, "You are a helpful assistant.", nil, 0)

	evs := collectEvents(t, r.Stream(context.Background(), []chat.Message{chat.NewUserMessage("hi")}))

	want := []session.EventKind{session.EventStarted, session.EventTextDelta, session.EventTextDelta, session.EventDone}
	got := kinds(evs)
	if len(got) != len(want) {
		t.Fatalf("event kinds: got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event kinds: got %v want %v", got, want)
		}
	}
	if evs[1].Text+evs[2].Text != "Hello there" {
		t.Errorf("unexpected deltas: %q %q", evs[1].Text, evs[2].Text)
	}
	if evs[0].MessageID == "" || evs[0].MessageID != evs[3].MessageID {
		t.Errorf("message id not stable across events")
	}

	reqs := ft.requests()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(reqs))
	}
	if !bytes.Contains(reqs[0], []byte("You are a helpful assistant.")) {
		t.Errorf("system prompt missing from request")
	}
}

func TestStream_ToolExchangeRoundTrips(t *testing.T) {
	echoed := false
	echo := tools.Definition{
		Name:        "echoTool",
		Description: "echoes",
		InputSchema: tools.GenerateSchema[struct{}](),
		Function: func(input json.RawMessage) (string, error) {
			echoed = true
			return "echoed:" + string(input), nil
		},
	}
	ft := &fakeTransport{
		status: []int{200, 200},
		bodies: [][]byte{
			toolUseStreamBody("echoTool", `{"query":"deadlines"}`),
			textStreamBody([]string{"Done."}, "end_turn"),
		},
		mediaType: "text/event-stream",
	}
	r := runner.New(newClientWithTransport(ft), provider.DefaultModel, "", []tools.Definition{echo}, 0)

	evs := collectEvents(t, r.Stream(context.Background(), []chat.Message{chat.NewUserMessage("search please")}))

	want := []session.EventKind{
		session.EventStarted,
		session.EventToolCall,
		session.EventToolResult,
		session.EventTextDelta,
		session.EventDone,
	}
	got := kinds(evs)
	if len(got) != len(want) {
		t.Fatalf("event kinds: got %v want %v (events %+v)", got, want, evs)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event kinds: got %v want %v", got, want)
		}
	}
	if !echoed {
		t.Fatal("tool handler never ran")
	}
	if evs[1].ToolName != "echoTool" || !strings.Contains(string(evs[1].Input), "deadlines") {
		t.Errorf("tool call event malformed: %+v", evs[1])
	}
	if !strings.Contains(string(evs[2].Output), "echoed:") {
		t.Errorf("tool result event malformed: %+v", evs[2])
	}

	reqs := ft.requests()
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(reqs))
	}
	if !bytes.Contains(reqs[1], []byte("tool_result")) {
		t.Errorf("second request missing tool_result: %s", reqs[1])
	}
}

func TestStream_TransportFailureEmitsFailed(t *testing.T) {
	ft := &fakeTransport{
		status:    []int{400},
		bodies:    [][]byte{[]byte(`{"type":"error","error":{"type":"invalid_request_error","message":"bad"}}`)},
		mediaType: "application/json",
	}
	r := runner.New(newClientWithTransport(ft), provider.DefaultModel, "", nil, 0)

	evs := collectEvents(t, r.Stream(context.Background(), []chat.Message{chat.NewUserMessage("hi")}))
	last := evs[len(evs)-1]
	if last.Kind != session.EventFailed || last.Err == nil {
		t.Fatalf("expected trailing failed event, got %+v", evs)
	}
}

func TestStream_UnknownToolReportsErrorResult(t *testing.T) {
	ft := &fakeTransport{
		status: []int{200, 200},
		bodies: [][]byte{
			toolUseStreamBody("noSuchTool", `{}`),
			textStreamBody([]string{"ok"}, "end_turn"),
		},
		mediaType: "text/event-stream",
	}
	r := runner.New(newClientWithTransport(ft), provider.DefaultModel, "", nil, 0)

	evs := collectEvents(t, r.Stream(context.Background(), []chat.Message{chat.NewUserMessage("hi")}))
	var result *session.Event
	for i := range evs {
		if evs[i].Kind == session.EventToolResult {
			result = &evs[i]
		}
	}
	if result == nil {
		t.Fatalf("no tool result event: %+v", evs)
	}
	if !strings.Contains(string(result.Output), "tool not found") {
		t.Errorf("unexpected unknown-tool output: %s", result.Output)
	}

	reqs := ft.requests()
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(reqs))
	}
	if !bytes.Contains(reqs[1], []byte(`"is_error":true`)) {
		t.Errorf("unknown tool must produce is_error tool_result: %s", reqs[1])
	}
}

package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/ringel-ai/admitchat/chat"
	"github.com/ringel-ai/admitchat/internal/diag"
	"github.com/ringel-ai/admitchat/store"
)

// MaxMessageLen is the upstream-enforced submission limit, re-checked here.
const MaxMessageLen = 2000

var (
	ErrNotHydrated = errors.New("session: not hydrated yet")
	ErrBusy        = errors.New("session: an exchange is already in flight")
	ErrEmpty       = errors.New("session: message must not be empty")
	ErrTooLong     = errors.New("session: message exceeds the length limit")
)

// Controller owns the live conversation state: transcript, duration ledger,
// streaming status, and the flags driving the startup protocol. All reads go
// through Snapshot; all mutations go through the exported operations, each of
// which writes the combined current state through to the store before
// releasing the lock, so storage never sees a transcript paired with a stale
// ledger.
type Controller struct {
	store     *store.Store
	transport Transport
	welcome   string

	mu           sync.Mutex
	messages     []chat.Message
	durations    chat.Durations
	status       Status
	hydrated     bool
	welcomeShown bool

	// seq identifies the current exchange; events carrying an older seq are
	// discarded, which is what makes Stop effective immediately.
	seq    int
	cancel context.CancelFunc
}

// New returns a controller persisting through st and exchanging through tr.
// welcome is the text injected as the first assistant message of an empty
// history.
func New(st *store.Store, tr Transport, welcome string) *Controller {
	return &Controller{
		store:     st,
		transport: tr,
		welcome:   welcome,
		messages:  []chat.Message{},
		durations: chat.Durations{},
		status:    StatusReady,
	}
}

// Snapshot is a read-only copy of the controller state for rendering.
type Snapshot struct {
	Messages  []chat.Message
	Durations chat.Durations
	Status    Status
	Hydrated  bool
}

// Snapshot returns a deep copy of the current state. Before Hydrate has run
// it reports an empty transcript and ledger with Hydrated false, which the
// presentation layer must render as a loading affordance.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Messages:  chat.CloneMessages(c.messages),
		Durations: c.durations.Clone(),
		Status:    c.status,
		Hydrated:  c.hydrated,
	}
}

// Hydrate runs the startup protocol: load the persisted document, adopt it,
// mark hydration complete, then inject and persist the welcome message when
// the adopted transcript is empty. Idempotent; only the first call acts.
func (c *Controller) Hydrate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hydrated {
		return
	}
	doc := c.store.Load()
	c.messages = doc.Messages
	c.durations = doc.Durations
	c.hydrated = true

	if len(c.messages) == 0 && !c.welcomeShown {
		c.welcomeShown = true
		c.messages = append(c.messages, chat.Message{
			ID:    "welcome-" + uuid.NewString(),
			Role:  chat.RoleAssistant,
			Parts: []chat.Part{chat.TextPart(c.welcome)},
		})
		c.persistLocked()
	}
}

// Submit appends a user message and starts the streaming exchange. It
// returns without awaiting completion; updates arrive through the transport
// events and are applied by the controller's consumer goroutine.
func (c *Controller) Submit(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmpty
	}
	if utf8.RuneCountInString(text) > MaxMessageLen {
		return ErrTooLong
	}

	c.mu.Lock()
	if !c.hydrated {
		c.mu.Unlock()
		return ErrNotHydrated
	}
	if c.status.Busy() {
		c.mu.Unlock()
		return ErrBusy
	}

	c.messages = append(c.messages, chat.NewUserMessage(text))
	c.status = StatusSubmitted
	c.seq++
	mySeq := c.seq
	ctx, cancel := context.WithCancel(context.Background())
	// A failed exchange leaves its cancel installed until its stream drains;
	// release it before taking over so the old context cannot leak.
	if c.cancel != nil {
		c.cancel()
	}
	c.cancel = cancel
	transcript := chat.CloneMessages(c.messages)
	c.persistLocked()
	c.mu.Unlock()

	go c.consume(ctx, mySeq, time.Now(), transcript)
	return nil
}

// consume applies one exchange's events in arrival order.
func (c *Controller) consume(ctx context.Context, mySeq int, start time.Time, transcript []chat.Message) {
	defer c.releaseExchange(mySeq)
	liveID := ""
	for ev := range c.transport.Stream(ctx, transcript) {
		c.apply(mySeq, start, &liveID, ev)
	}
}

// releaseExchange cancels the exchange context once the event stream is
// drained, unless a newer exchange already took over.
func (c *Controller) releaseExchange(mySeq int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq != mySeq || c.cancel == nil {
		return
	}
	c.cancel()
	c.cancel = nil
}

func (c *Controller) apply(mySeq int, start time.Time, liveID *string, ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq != mySeq {
		// Late event from a cancelled or superseded exchange.
		return
	}

	switch ev.Kind {
	case EventStarted:
		if ev.MessageID != "" {
			*liveID = ev.MessageID
		} else {
			*liveID = uuid.NewString()
		}

	case EventTextDelta:
		msg := c.liveMessageLocked(liveID)
		msg.AppendText(ev.Text)
		c.status = StatusStreaming
		c.persistLocked()

	case EventToolCall:
		msg := c.liveMessageLocked(liveID)
		msg.Parts = append(msg.Parts, chat.ToolCallPart(ev.ToolName, ev.Input))
		c.status = StatusStreaming
		c.persistLocked()

	case EventToolResult:
		msg := c.liveMessageLocked(liveID)
		if p := pendingToolCall(msg, ev.ToolName); p != nil {
			*p = chat.ToolResultPart(ev.ToolName, ev.Input, ev.Output)
		} else {
			msg.Parts = append(msg.Parts, chat.ToolResultPart(ev.ToolName, ev.Input, ev.Output))
		}
		c.persistLocked()

	case EventDone:
		c.status = StatusReady
		if *liveID != "" && c.hasMessageLocked(*liveID) {
			c.durations = c.durations.Set(*liveID, time.Since(start).Milliseconds())
		}
		c.persistLocked()

	case EventFailed:
		c.status = StatusError
		diag.Warn("session: exchange failed", ev.Err)
	}
}

// liveMessageLocked returns the in-flight assistant message, appending it to
// the transcript on first content so no empty message is ever persisted.
func (c *Controller) liveMessageLocked(liveID *string) *chat.Message {
	if *liveID == "" {
		*liveID = uuid.NewString()
	}
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].ID == *liveID {
			return &c.messages[i]
		}
	}
	c.messages = append(c.messages, chat.Message{ID: *liveID, Role: chat.RoleAssistant})
	return &c.messages[len(c.messages)-1]
}

func (c *Controller) hasMessageLocked(id string) bool {
	for i := range c.messages {
		if c.messages[i].ID == id {
			return true
		}
	}
	return false
}

// pendingToolCall finds the most recent unanswered call part for name.
func pendingToolCall(msg *chat.Message, name string) *chat.Part {
	for i := len(msg.Parts) - 1; i >= 0; i-- {
		p := &msg.Parts[i]
		if p.IsToolCall() {
			if n, ok := toolPartName(*p); ok && n == name {
				return p
			}
		}
	}
	return nil
}

func toolPartName(p chat.Part) (string, bool) {
	if rest, found := strings.CutPrefix(p.Type, "tool-"); found && rest != "" {
		return rest, true
	}
	if p.ToolName != "" {
		return p.ToolName, true
	}
	return "", false
}

// Stop cancels the in-flight exchange. Partial assistant content already in
// the transcript is kept; the status is ready before Stop returns, and any
// events the transport still delivers are discarded.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.status.Busy() {
		return
	}
	c.seq++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.status = StatusReady
	c.persistLocked()
}

// Clear resets the session to an empty transcript and ledger and persists
// the empty document before returning. The whole reset happens under the
// lock, so no reader can observe an empty transcript alongside the old
// ledger. Resetting the welcome flag does not re-show the welcome now; it
// arms the injection for the next hydration cycle.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.messages = []chat.Message{}
	c.durations = chat.Durations{}
	c.welcomeShown = false
	c.status = StatusReady
	c.store.Save(store.Document{Messages: []chat.Message{}, Durations: chat.Durations{}})
}

// persistLocked writes the combined current snapshot through to the store.
// Pre-hydration changes are never persisted; the document on disk is still
// the authority until hydration adopts it.
func (c *Controller) persistLocked() {
	if !c.hydrated {
		return
	}
	c.store.Save(store.Document{
		Messages:  chat.CloneMessages(c.messages),
		Durations: c.durations.Clone(),
	})
}

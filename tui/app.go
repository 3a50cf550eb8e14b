// Package tui renders the chat session in the terminal. It is presentation
// glue only: all conversation state lives in the session controller, which
// the model polls on a short tick so streaming updates appear as they land.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ringel-ai/admitchat/chat"
	"github.com/ringel-ai/admitchat/config"
	"github.com/ringel-ai/admitchat/display"
	"github.com/ringel-ai/admitchat/session"
)

const pollInterval = 80 * time.Millisecond

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type Model struct {
	ctrl *session.Controller

	vp    viewport.Model
	input textinput.Model
	spin  spinner.Model

	snap   session.Snapshot
	notice string
	width  int
	height int
	sized  bool
}

func New(ctrl *session.Controller) Model {
	ti := textinput.New()
	ti.Placeholder = "Type your message here..."
	ti.CharLimit = session.MaxMessageLen
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctrl:  ctrl,
		input: ti,
		spin:  sp,
	}
}

func (m Model) Init() tea.Cmd {
	hydrate := func() tea.Msg {
		m.ctrl.Hydrate()
		return tickMsg(time.Now())
	}
	return tea.Batch(hydrate, m.spin.Tick, textinput.Blink)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		chrome := 4 // title, status, input, help
		if !m.sized {
			m.vp = viewport.New(msg.Width, max(msg.Height-chrome, 1))
			m.sized = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = max(msg.Height-chrome, 1)
		}
		m.input.Width = msg.Width - 4
		m.refresh(true)
		return m, nil

	case tickMsg:
		atBottom := m.vp.AtBottom()
		m.refresh(atBottom)
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.ctrl.Stop()
			return m, nil
		case "ctrl+n":
			m.ctrl.Clear()
			m.notice = ""
			m.refresh(true)
			return m, nil
		case "enter":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	err := m.ctrl.Submit(m.input.Value())
	switch {
	case err == nil:
		m.input.Reset()
		m.notice = ""
		m.refresh(true)
	case errors.Is(err, session.ErrEmpty):
		m.notice = "Message cannot be empty."
	case errors.Is(err, session.ErrTooLong):
		m.notice = fmt.Sprintf("Message must be at most %d characters.", session.MaxMessageLen)
	case errors.Is(err, session.ErrBusy):
		m.notice = "Please wait for the current response to finish."
	case errors.Is(err, session.ErrNotHydrated):
		m.notice = "Still loading the conversation..."
	}
	return m, nil
}

// refresh re-reads the controller snapshot and rebuilds the viewport,
// keeping the view pinned to the newest content unless the user scrolled up.
func (m *Model) refresh(follow bool) {
	m.snap = m.ctrl.Snapshot()
	if !m.sized {
		return
	}
	m.vp.SetContent(m.renderTranscript())
	if follow {
		m.vp.GotoBottom()
	}
}

func (m Model) View() string {
	if !m.sized {
		return "\n  " + m.spin.View() + " Starting...\n"
	}
	if !m.snap.Hydrated {
		return "\n  " + m.spin.View() + " Loading conversation...\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Chat with "+config.AIName) + "\n")
	b.WriteString(m.vp.View() + "\n")
	b.WriteString(m.statusLine() + "\n")
	b.WriteString(m.input.View() + "\n")
	b.WriteString(helpStyle.Render("enter send • esc stop • ctrl+n " +
		strings.ToLower(config.ClearChatText) + " • ctrl+c quit"))
	return b.String()
}

func (m Model) statusLine() string {
	switch {
	case m.notice != "":
		return errorStyle.Render(m.notice)
	case m.snap.Status == session.StatusSubmitted:
		return statusBarStyle.Render(m.spin.View() + " Thinking...")
	case m.snap.Status == session.StatusStreaming:
		return statusBarStyle.Render(m.spin.View() + " Responding...")
	case m.snap.Status == session.StatusError:
		return errorStyle.Render("Something went wrong. Press enter to try again.")
	default:
		return statusBarStyle.Render("Ready")
	}
}

func (m Model) renderTranscript() string {
	var b strings.Builder
	for i, msg := range m.snap.Messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderMessage(msg))
	}
	return b.String()
}

func (m Model) renderMessage(msg chat.Message) string {
	var b strings.Builder
	switch msg.Role {
	case chat.RoleUser:
		b.WriteString(userRoleStyle.Render("You") + "\n")
	case chat.RoleAssistant:
		b.WriteString(assistantRoleStyle.Render(config.AIName) + "\n")
	default:
		b.WriteString(dimStyle.Render(msg.Role) + "\n")
	}

	body := lipgloss.NewStyle().Width(max(m.width-2, 20)).PaddingLeft(1)
	for _, p := range msg.Parts {
		switch {
		case p.IsText():
			b.WriteString(body.Render(p.Text) + "\n")
		case p.IsTool():
			b.WriteString(" " + toolStyle.Render(renderToolPart(p)) + "\n")
		}
	}

	if ms, ok := m.snap.Durations.Get(msg.ID); ok && msg.Role == chat.RoleAssistant {
		b.WriteString(" " + dimStyle.Render(fmt.Sprintf("answered in %.1fs", float64(ms)/1000)) + "\n")
	}
	return b.String()
}

// renderToolPart produces the one-line activity label for a tool part, e.g.
// "📖 Reading lecture notebook: Class 4".
func renderToolPart(p chat.Part) string {
	name, _ := display.ExtractToolName(p)
	d := display.Resolve(name)

	icon, label := d.CallIcon, d.CallLabel
	if p.IsToolResult() {
		icon, label = d.ResultIcon, d.ResultLabel
	}

	if args := display.FormatArgs(d, p.Input); args != "" {
		return fmt.Sprintf("%s %s: %s", icon, label, args)
	}
	return fmt.Sprintf("%s %s", icon, label)
}

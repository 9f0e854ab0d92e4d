package chatui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// chatModel is the chat room view: an append-only message log plus the
// pending input line. The log holds received payloads verbatim, in arrival
// order; sent text is never appended locally and only shows up once the
// server echoes it back.
type chatModel struct {
	sender Sender
	thread string

	input    textinput.Model
	viewport viewport.Model
	messages []string
	status   string

	styles styles
	width  int
	height int
}

func newChatModel(sender Sender, thread string, st styles) chatModel {
	ti := textinput.New()
	ti.Placeholder = "Say something... (Enter to send, Ctrl+C to exit)"
	ti.Prompt = "> "
	ti.CharLimit = 1024
	ti.Width = 78
	ti.Focus()

	return chatModel{
		sender:   sender,
		thread:   thread,
		input:    ti,
		viewport: viewport.New(80, 20),
		styles:   st,
	}
}

func (m chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m chatModel) Update(msg tea.Msg) (chatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter {
			return m.submit(), nil
		}

	case IncomingMsg:
		m.messages = append(m.messages, msg.Payload)
		m.refreshLog()
		m.viewport.GotoBottom()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-4, 1)
		m.input.Width = max(msg.Width-4, 10)
		m.refreshLog()
		return m, nil
	}

	var tiCmd, vpCmd tea.Cmd
	m.input, tiCmd = m.input.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd)
}

// submit sends the pending input when it is non-empty after trimming. The
// raw, untrimmed text goes over the wire. Whitespace-only input is left in
// the box untouched; anything that was handed to the channel clears the box,
// with the send outcome surfaced in the status line.
func (m chatModel) submit() chatModel {
	raw := m.input.Value()
	if strings.TrimSpace(raw) == "" {
		return m
	}

	if err := m.sender.Send(raw); err != nil {
		m.status = "send failed: " + err.Error()
	} else {
		m.status = "sent"
	}
	m.input.SetValue("")
	return m
}

func (m *chatModel) refreshLog() {
	m.viewport.SetContent(strings.Join(m.messages, "\n"))
}

func (m chatModel) View() string {
	title := "threadchat"
	if m.thread != "" {
		title = m.thread
	}

	var b strings.Builder
	b.WriteString(m.styles.header.Render(title))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.styles.status.Render(m.status))
	return b.String()
}

package chatui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const directoryTimeout = 5 * time.Second

// landingModel is the landing page: pick a live thread, start a new one, or
// jump straight into the room. Thread records expire after five minutes on
// the directory side, so the list can be refreshed in place.
type landingModel struct {
	directory ThreadDirectory
	username  string

	threads []threadEntry
	cursor  int
	loading bool
	loadErr error

	creating   bool
	titleInput textinput.Model

	styles styles
	width  int
	height int
}

type threadEntry struct {
	title string
}

func newLandingModel(directory ThreadDirectory, username string, st styles) landingModel {
	ti := textinput.New()
	ti.Placeholder = "thread title"
	ti.Prompt = "> "
	ti.CharLimit = 120

	return landingModel{
		directory:  directory,
		username:   username,
		loading:    true,
		titleInput: ti,
		styles:     st,
	}
}

func (m landingModel) Init() tea.Cmd {
	return m.loadThreads
}

// Fixed entries appended after the live thread list.
func (m landingModel) newThreadIndex() int { return len(m.threads) }
func (m landingModel) noThreadIndex() int  { return len(m.threads) + 1 }

func (m landingModel) Update(msg tea.Msg) (landingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.creating {
			return m.updateCreating(msg)
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < m.noThreadIndex() {
				m.cursor++
			}
		case "r":
			m.loading = true
			return m, m.loadThreads
		case "enter":
			switch m.cursor {
			case m.newThreadIndex():
				m.creating = true
				m.titleInput.SetValue("")
				m.titleInput.Focus()
				return m, textinput.Blink
			case m.noThreadIndex():
				return m, chooseThread("")
			default:
				return m, chooseThread(m.threads[m.cursor].title)
			}
		}

	case threadsLoadedMsg:
		m.loading = false
		m.loadErr = nil
		m.threads = m.threads[:0]
		for _, t := range msg.threads {
			m.threads = append(m.threads, threadEntry{title: t.Title})
		}
		if m.cursor > m.noThreadIndex() {
			m.cursor = m.noThreadIndex()
		}

	case threadsErrMsg:
		m.loading = false
		m.loadErr = msg.err

	case threadCreatedMsg:
		m.creating = false
		return m, chooseThread(msg.topic.Title)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

func (m landingModel) updateCreating(msg tea.KeyMsg) (landingModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.creating = false
		return m, nil
	case tea.KeyEnter:
		title := strings.TrimSpace(m.titleInput.Value())
		if title == "" {
			return m, nil
		}
		return m, m.createThread(title)
	}

	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	return m, cmd
}

func (m landingModel) loadThreads() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), directoryTimeout)
	defer cancel()

	threads, err := m.directory.List(ctx)
	if err != nil {
		return threadsErrMsg{err: err}
	}
	return threadsLoadedMsg{threads: threads}
}

func (m landingModel) createThread(title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), directoryTimeout)
		defer cancel()

		topic, err := m.directory.Create(ctx, title, m.username)
		if err != nil {
			return threadsErrMsg{err: err}
		}
		return threadCreatedMsg{topic: topic}
	}
}

func chooseThread(title string) tea.Cmd {
	return func() tea.Msg {
		return threadChosenMsg{title: title}
	}
}

func (m landingModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.header.Render("threadchat"))
	b.WriteString("\n\n")

	if m.creating {
		b.WriteString("Name your thread (Enter to create, Esc to go back):\n\n")
		b.WriteString(m.titleInput.View())
		b.WriteString("\n")
		if m.loadErr != nil {
			b.WriteString(m.styles.errText.Render(fmt.Sprintf("directory error: %v", m.loadErr)))
			b.WriteString("\n")
		}
		return b.String()
	}

	switch {
	case m.loading:
		b.WriteString(m.styles.faint.Render("loading threads..."))
		b.WriteString("\n\n")
	case m.loadErr != nil:
		b.WriteString(m.styles.errText.Render(fmt.Sprintf("directory unavailable: %v", m.loadErr)))
		b.WriteString("\n\n")
	case len(m.threads) == 0:
		b.WriteString(m.styles.faint.Render("no live threads right now"))
		b.WriteString("\n\n")
	}

	for i, entry := range m.threads {
		b.WriteString(m.renderEntry(i, entry.title))
	}
	b.WriteString(m.renderEntry(m.newThreadIndex(), "start your own thread"))
	b.WriteString(m.renderEntry(m.noThreadIndex(), "just chat"))

	b.WriteString("\n")
	b.WriteString(m.styles.faint.Render("up/down: move  enter: select  r: refresh  ctrl+c: quit"))
	return b.String()
}

func (m landingModel) renderEntry(index int, label string) string {
	if index == m.cursor {
		return m.styles.cursor.Render("> "+label) + "\n"
	}
	return m.styles.entry.Render(label) + "\n"
}

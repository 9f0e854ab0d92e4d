package chatui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type page int

const (
	pageLanding page = iota
	pageChat
)

// App is the root layout shell. It owns the window size and switches from
// the landing page to the chat room once a thread is chosen.
type App struct {
	page    page
	landing landingModel
	chat    chatModel
}

// New builds the interface around an already-connected sender. The channel
// is constructed and owned by the caller; nothing here dials or closes it.
func New(sender Sender, directory ThreadDirectory, username string) App {
	st := defaultStyles()
	return App{
		page:    pageLanding,
		landing: newLandingModel(directory, username, st),
		chat:    newChatModel(sender, "", st),
	}
}

func (a App) Init() tea.Cmd {
	return a.landing.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}

	case tea.WindowSizeMsg:
		var landingCmd, chatCmd tea.Cmd
		a.landing, landingCmd = a.landing.Update(msg)
		a.chat, chatCmd = a.chat.Update(msg)
		return a, tea.Batch(landingCmd, chatCmd)

	case threadChosenMsg:
		a.page = pageChat
		a.chat.thread = msg.title
		return a, a.chat.Init()

	case IncomingMsg:
		// Payloads arriving before the room is shown are dropped; nothing
		// queues ahead of the view.
		if a.page != pageChat {
			return a, nil
		}
	}

	var cmd tea.Cmd
	switch a.page {
	case pageLanding:
		a.landing, cmd = a.landing.Update(msg)
	case pageChat:
		a.chat, cmd = a.chat.Update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	switch a.page {
	case pageChat:
		return a.chat.View()
	default:
		return a.landing.View()
	}
}

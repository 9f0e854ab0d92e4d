package chatui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() (App, *fakeSender) {
	sender := &fakeSender{}
	return New(sender, &fakeDirectory{}, "alice"), sender
}

func updateApp(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	model, cmd := a.Update(msg)
	app, ok := model.(App)
	require.True(t, ok)
	return app, cmd
}

func TestApp_StartsOnLanding(t *testing.T) {
	a, _ := newTestApp()
	assert.Equal(t, pageLanding, a.page)
	assert.Contains(t, a.View(), "threadchat")
}

func TestApp_ThreadChosenSwitchesToChat(t *testing.T) {
	a, _ := newTestApp()

	a, _ = updateApp(t, a, threadChosenMsg{title: "night owls"})

	assert.Equal(t, pageChat, a.page)
	assert.Equal(t, "night owls", a.chat.thread)
	assert.Contains(t, a.View(), "night owls")
}

func TestApp_IncomingFlowsToChatRoom(t *testing.T) {
	a, _ := newTestApp()
	a, _ = updateApp(t, a, threadChosenMsg{})

	a, _ = updateApp(t, a, IncomingMsg{Payload: "a"})
	a, _ = updateApp(t, a, IncomingMsg{Payload: "b"})

	assert.Equal(t, []string{"a", "b"}, a.chat.messages)
}

func TestApp_IncomingDroppedOnLanding(t *testing.T) {
	a, _ := newTestApp()

	a, _ = updateApp(t, a, IncomingMsg{Payload: "early"})
	a, _ = updateApp(t, a, threadChosenMsg{})

	assert.Empty(t, a.chat.messages)
}

func TestApp_EnterInChatSends(t *testing.T) {
	a, sender := newTestApp()
	a, _ = updateApp(t, a, threadChosenMsg{})

	a.chat.input.SetValue("hello")
	a, _ = updateApp(t, a, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []string{"hello"}, sender.sent)
}

func TestApp_CtrlCQuits(t *testing.T) {
	a, _ := newTestApp()

	_, cmd := updateApp(t, a, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)

	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestApp_WindowSizeReachesBothPages(t *testing.T) {
	a, _ := newTestApp()

	a, _ = updateApp(t, a, tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Equal(t, 100, a.landing.width)
	assert.Equal(t, 100, a.chat.viewport.Width)
}

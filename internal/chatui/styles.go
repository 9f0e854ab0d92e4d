package chatui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	header  lipgloss.Style
	entry   lipgloss.Style
	cursor  lipgloss.Style
	faint   lipgloss.Style
	errText lipgloss.Style
	status  lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62")).Padding(0, 1),
		entry:   lipgloss.NewStyle().PaddingLeft(2),
		cursor:  lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		faint:   lipgloss.NewStyle().Faint(true),
		errText: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		status:  lipgloss.NewStyle().Faint(true).PaddingLeft(1),
	}
}

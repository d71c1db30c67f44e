package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch m.currentScene {
	case SceneSummary:
		content = BorderStyle.Render(m.summaryModel.View())
	default:
		content = lipgloss.JoinHorizontal(lipgloss.Top,
			m.recordsModel.View(),
			" ",
			ActiveBorderStyle.Render(m.resultsModel.View()),
		)
	}

	return AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	))
}

// renderTitleBar renders the application title and the rules in use
func (m Model) renderTitleBar() string {
	meta := m.roster.Rules().Metadata
	title := TitleStyle.Render("Finiquito LFT")
	sub := SubtitleStyle.Render(fmt.Sprintf("%s • %s (%d)", m.currentScene, meta.Description, meta.DataYear))
	return lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", sub)
}

// renderStatusBar renders the last status or error plus the key help
func (m Model) renderStatusBar() string {
	line := ""
	switch {
	case m.err != nil:
		line = ErrorStyle.Render("Error: "+m.err.Error()) + "\n"
	case m.status != "":
		line = InfoStyle.Render(m.status) + "\n"
	}
	return StatusBarStyle.Width(max(m.width-2, 10)).Render(line + m.help.View(m.keys))
}

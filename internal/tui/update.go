package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/finiquito/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case tuimsg.RecordSelectedMsg:
		return m, selectCmd(m.ctx, m.roster, msg.ID)

	case tuimsg.RecordActionMsg:
		return m, actionCmd(m.ctx, m.roster, msg)

	case RosterChangedMsg:
		m.err = msg.Err
		m.status = msg.Status
		m.refresh()
		if m.currentScene == SceneSummary {
			return m, summaryCmd(m.ctx, m.roster)
		}
		return m, nil

	case SummaryLoadedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.summaryModel.SetSummary(msg.Summary)
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key dismisses an error
	if m.err != nil && !key.Matches(msg, m.keys.Quit) {
		m.err = nil
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Summary):
		m.currentScene = SceneSummary
		return m, summaryCmd(m.ctx, m.roster)

	case key.Matches(msg, m.keys.Back):
		m.currentScene = SceneRoster
		return m, nil
	}

	if m.currentScene != SceneRoster {
		return m, nil
	}
	var cmd tea.Cmd
	m.recordsModel, cmd = m.recordsModel.Update(msg)
	return m, cmd
}

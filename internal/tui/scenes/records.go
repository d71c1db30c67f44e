package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/rgehrsitz/finiquito/internal/tui/tuimsg"
	"github.com/rgehrsitz/finiquito/internal/tui/tuistyles"
)

// RecordsModel is the sidebar listing the roster
type RecordsModel struct {
	records       []domain.EmployeeRecord
	selectedIndex int
	width         int
	height        int
}

// NewRecordsModel creates an empty sidebar
func NewRecordsModel() *RecordsModel {
	return &RecordsModel{width: 30}
}

// SetRecords replaces the list and moves the cursor onto activeID
func (m *RecordsModel) SetRecords(records []domain.EmployeeRecord, activeID string) {
	m.records = records
	m.selectedIndex = 0
	for i, record := range records {
		if record.ID == activeID {
			m.selectedIndex = i
			break
		}
	}
}

// SetSize updates the sidebar dimensions
func (m *RecordsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SelectedID returns the id under the cursor
func (m *RecordsModel) SelectedID() string {
	if m.selectedIndex >= 0 && m.selectedIndex < len(m.records) {
		return m.records[m.selectedIndex].ID
	}
	return ""
}

// SelectedIndex returns the cursor position
func (m *RecordsModel) SelectedIndex() int {
	return m.selectedIndex
}

// Update handles sidebar keys
func (m *RecordsModel) Update(msg tea.Msg) (*RecordsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	previous := m.selectedIndex
	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.selectedIndex < len(m.records)-1 {
			m.selectedIndex++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("g", "home"))):
		m.selectedIndex = 0
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("G", "end"))):
		m.selectedIndex = max(0, len(m.records)-1)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("a"))):
		return m, action(tuimsg.ActionAdd, "")
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("d", "delete"))):
		return m, action(tuimsg.ActionRemove, m.SelectedID())
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("x"))):
		return m, action(tuimsg.ActionClear, m.SelectedID())
	}

	if m.selectedIndex == previous {
		return m, nil
	}
	id := m.SelectedID()
	return m, func() tea.Msg {
		return tuimsg.RecordSelectedMsg{ID: id}
	}
}

func action(a tuimsg.RecordAction, id string) tea.Cmd {
	return func() tea.Msg {
		return tuimsg.RecordActionMsg{Action: a, ID: id}
	}
}

// View renders the sidebar
func (m *RecordsModel) View() string {
	var b strings.Builder
	b.WriteString(tuistyles.TitleStyle.Render(fmt.Sprintf("Colaboradores (%d)", len(m.records))))
	b.WriteString("\n\n")

	for i, record := range m.records {
		name := truncate(record.Name, max(m.width-6, 8))
		if i == m.selectedIndex {
			b.WriteString(tuistyles.SelectedItemStyle.Render("▸ " + name))
		} else {
			b.WriteString(tuistyles.UnselectedItemStyle.Render("  " + name))
		}
		b.WriteString("\n")
	}

	return tuistyles.BorderStyle.
		Width(m.width).
		Render(lipgloss.NewStyle().Render(strings.TrimRight(b.String(), "\n")))
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}

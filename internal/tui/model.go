package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/finiquito/internal/roster"
	"github.com/rgehrsitz/finiquito/internal/tui/scenes"
	"github.com/rgehrsitz/finiquito/internal/tui/tuimsg"
)

// Model represents the entire application state
type Model struct {
	currentScene Scene

	// Terminal dimensions
	width  int
	height int

	ctx    context.Context
	roster *roster.Roster

	recordsModel *scenes.RecordsModel
	resultsModel *scenes.ResultsModel
	summaryModel *scenes.SummaryModel

	keys keyMap
	help help.Model

	status string
	err    error
}

// NewModel creates the roster browser over r. Roster writes run with ctx.
func NewModel(ctx context.Context, r *roster.Roster) Model {
	m := Model{
		currentScene: SceneRoster,
		ctx:          ctx,
		roster:       r,
		recordsModel: scenes.NewRecordsModel(),
		resultsModel: scenes.NewResultsModel(),
		summaryModel: scenes.NewSummaryModel(),
		keys:         defaultKeyMap(),
		help:         help.New(),
		width:        100,
		height:       30,
	}
	m.refresh()
	m.resize()
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return nil
}

// refresh reloads the sidebar and the active record's results from the roster
func (m *Model) refresh() {
	m.recordsModel.SetRecords(m.roster.Records(), m.roster.ActiveID())
	m.resultsModel.SetEntry(m.roster.Active(), m.roster.ActiveResult())
}

func (m *Model) resize() {
	sidebar := 30
	m.recordsModel.SetSize(sidebar, m.height-4)
	m.resultsModel.SetSize(max(m.width-sidebar-6, 20), m.height-4)
	m.help.Width = m.width
}

// selectCmd makes id the active record
func selectCmd(ctx context.Context, r *roster.Roster, id string) tea.Cmd {
	return func() tea.Msg {
		if err := r.Select(ctx, id); err != nil {
			return RosterChangedMsg{Err: err}
		}
		return RosterChangedMsg{}
	}
}

// actionCmd applies a sidebar action to the roster
func actionCmd(ctx context.Context, r *roster.Roster, msg tuimsg.RecordActionMsg) tea.Cmd {
	return func() tea.Msg {
		switch msg.Action {
		case tuimsg.ActionAdd:
			record, err := r.Add(ctx)
			if err != nil {
				return RosterChangedMsg{Err: err}
			}
			return RosterChangedMsg{Status: fmt.Sprintf("Agregado %s", record.Name)}

		case tuimsg.ActionRemove:
			record, err := r.Get(msg.ID)
			if err != nil {
				return RosterChangedMsg{Err: err}
			}
			if err := r.Remove(ctx, msg.ID); err != nil {
				return RosterChangedMsg{Err: err}
			}
			return RosterChangedMsg{Status: fmt.Sprintf("Eliminado %s", record.Name)}

		case tuimsg.ActionClear:
			if err := r.Select(ctx, msg.ID); err != nil {
				return RosterChangedMsg{Err: err}
			}
			record, err := r.ClearActive(ctx)
			if err != nil {
				return RosterChangedMsg{Err: err}
			}
			return RosterChangedMsg{Status: fmt.Sprintf("Montos de %s en cero", record.Name)}
		}
		return RosterChangedMsg{Err: fmt.Errorf("unknown record action %d", msg.Action)}
	}
}

// summaryCmd calculates the roster totals
func summaryCmd(ctx context.Context, r *roster.Roster) tea.Cmd {
	return func() tea.Msg {
		summary, err := r.Summary(ctx)
		return SummaryLoadedMsg{Summary: summary, Err: err}
	}
}

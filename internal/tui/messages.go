package tui

import "github.com/rgehrsitz/finiquito/internal/roster"

// Scene represents different screens in the TUI
type Scene int

const (
	SceneRoster Scene = iota
	SceneSummary
)

func (s Scene) String() string {
	switch s {
	case SceneRoster:
		return "Colaboradores"
	case SceneSummary:
		return "Resumen"
	default:
		return "Desconocido"
	}
}

// Message types for the Bubble Tea update cycle

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// RosterChangedMsg signals a roster mutation finished and the panes need
// refreshing
type RosterChangedMsg struct {
	Status string
	Err    error
}

// SummaryLoadedMsg carries freshly calculated roster totals
type SummaryLoadedMsg struct {
	Summary roster.Summary
	Err     error
}

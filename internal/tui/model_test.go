package tui

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/finiquito/internal/calculation"
	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/rgehrsitz/finiquito/internal/roster"
	"github.com/rgehrsitz/finiquito/internal/tui/tuimsg"
	"github.com/shopspring/decimal"
)

func newTestRoster(t *testing.T) *roster.Roster {
	t.Helper()
	n := 0
	return roster.New(calculation.NewCalculationEngine(),
		roster.WithClock(func() time.Time { return time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC) }),
		roster.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
}

// send feeds msg to the model and keeps running the returned commands
// until none is left
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	for i := 0; i < 10 && msg != nil; i++ {
		next, cmd := m.Update(msg)
		m = next.(Model)
		if cmd == nil {
			return m
		}
		msg = cmd()
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel(t *testing.T) {
	m := NewModel(context.Background(), newTestRoster(t))

	assert.Equal(t, SceneRoster, m.currentScene)
	assert.Equal(t, "id-1", m.recordsModel.SelectedID())

	view := m.View()
	assert.Contains(t, view, "Finiquito LFT")
	assert.Contains(t, view, "Colaborador 1")
}

func TestModel_ShowsActiveResults(t *testing.T) {
	r := newTestRoster(t)
	_, err := r.Update(context.Background(), "id-1", func(record *domain.EmployeeRecord) error {
		record.Name = "Ana"
		record.DailySalary = decimal.NewFromInt(500)
		record.StartDate = "2020-01-01"
		record.EndDate = "2024-01-01"
		return nil
	})
	require.NoError(t, err)

	view := NewModel(context.Background(), r).View()
	assert.Contains(t, view, "Ana")
	assert.Contains(t, view, "$400,659.05")
	assert.Contains(t, view, "$151,200.14")
	assert.Contains(t, view, "4 años, 2 días")
}

func TestModel_InvalidDatesWarning(t *testing.T) {
	r := newTestRoster(t)
	_, err := r.Update(context.Background(), "id-1", func(record *domain.EmployeeRecord) error {
		record.StartDate = "2025-01-01"
		return nil
	})
	require.NoError(t, err)

	assert.Contains(t, NewModel(context.Background(), r).View(), "Fechas inválidas")
}

func TestModel_AddAndNavigate(t *testing.T) {
	r := newTestRoster(t)
	m := NewModel(context.Background(), r)

	m = send(t, m, runes("a"))
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, "id-2", r.ActiveID())
	assert.Equal(t, "id-2", m.recordsModel.SelectedID())
	assert.Equal(t, "Agregado Colaborador 2", m.status)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "id-1", r.ActiveID())
	assert.Equal(t, 0, m.recordsModel.SelectedIndex())

	// already at the top, nothing to select
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Nil(t, cmd)
}

func TestModel_RemoveOnlyRecord(t *testing.T) {
	r := newTestRoster(t)
	m := NewModel(context.Background(), r)

	m = send(t, m, runes("d"))
	require.Equal(t, 1, r.Len())
	assert.Equal(t, "id-2", r.ActiveID(), "a fresh default record replaces the removed one")
	assert.Equal(t, "id-2", m.recordsModel.SelectedID())
	assert.NoError(t, m.err)
}

func TestModel_ClearAmounts(t *testing.T) {
	r := newTestRoster(t)
	_, err := r.Update(context.Background(), "id-1", func(record *domain.EmployeeRecord) error {
		record.DailySalary = decimal.NewFromInt(500)
		record.PendingBonuses = decimal.NewFromInt(1000)
		return nil
	})
	require.NoError(t, err)

	m := send(t, NewModel(context.Background(), r), runes("x"))
	assert.True(t, r.Active().DailySalary.IsZero())
	assert.True(t, r.Active().PendingBonuses.IsZero())
	assert.Contains(t, m.status, "en cero")
}

func TestModel_Summary(t *testing.T) {
	m := NewModel(context.Background(), newTestRoster(t))

	m = send(t, m, runes("s"))
	assert.Equal(t, SceneSummary, m.currentScene)
	view := m.View()
	assert.Contains(t, view, "Resumen de escenarios")
	assert.Contains(t, view, "TOTAL")

	// sidebar keys are ignored outside the roster scene
	_, cmd := m.Update(runes("a"))
	assert.Nil(t, cmd)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, SceneRoster, m.currentScene)
}

func TestModel_ErrorIsDismissed(t *testing.T) {
	m := NewModel(context.Background(), newTestRoster(t))

	m = send(t, m, tuimsg.RecordActionMsg{Action: tuimsg.ActionRemove, ID: "missing"})
	require.ErrorIs(t, m.err, roster.ErrNotFound)
	assert.Contains(t, m.View(), "Error:")

	m = send(t, m, runes("j"))
	assert.NoError(t, m.err)
}

func TestModel_Quit(t *testing.T) {
	m := NewModel(context.Background(), newTestRoster(t))

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_WindowResize(t *testing.T) {
	m := NewModel(context.Background(), newTestRoster(t))

	m = send(t, m, tea.WindowSizeMsg{Width: 160, Height: 50})
	assert.Equal(t, 160, m.width)
	assert.Equal(t, 160, m.help.Width)
}

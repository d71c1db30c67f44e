package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/finiquito/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// MetricCard displays one settlement figure with its label
type MetricCard struct {
	Label       string
	Value       string
	Description string
	Highlight   bool
	Width       int
}

// NewMetricCard creates a card for a formatted value
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 26,
	}
}

// NewAmountCard creates a card for a money amount
func NewAmountCard(label string, amount decimal.Decimal) *MetricCard {
	return NewMetricCard(label, tuistyles.FormatCurrency(amount))
}

// WithDescription adds a subtitle under the value
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithHighlight renders the value in the accent color
func (m *MetricCard) WithHighlight(on bool) *MetricCard {
	m.Highlight = on
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the bordered card
func (m *MetricCard) Render() string {
	valueStyle := tuistyles.MetricValueStyle
	if m.Highlight {
		valueStyle = tuistyles.HighlightValueStyle
	}

	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + valueStyle.Render(m.Value)
	if m.Description != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// RenderCompact returns a single "label: value" line without border
func (m *MetricCard) RenderCompact() string {
	return tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + tuistyles.MetricValueStyle.Render(m.Value)
}

// MetricGrid renders cards in rows of the given width
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows, current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

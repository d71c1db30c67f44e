// Package tuistyles holds the palette and styles shared by the TUI scenes
// and components. It sits below them so neither imports the other.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/finiquito/internal/output"
	"github.com/shopspring/decimal"
)

// Palette
var (
	ColorPrimary   = lipgloss.Color("#0F766E") // teal
	ColorSecondary = lipgloss.Color("#1D4ED8")
	ColorAccent    = lipgloss.Color("#B45309")
	ColorSuccess   = lipgloss.Color("#15803D")
	ColorWarning   = lipgloss.Color("#CA8A04")
	ColorDanger    = lipgloss.Color("#B91C1C")
	ColorInfo      = lipgloss.Color("#0369A1")

	ColorForeground = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F3F4F6"}
	ColorMuted      = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	ColorBorder     = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}
)

var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(ColorBorder)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ActiveBorderStyle = BorderStyle.
				BorderForeground(ColorPrimary)

	SelectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary)

	UnselectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary).
			MarginTop(1)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	HighlightValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorDanger)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	InfoStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(ColorInfo)
)

// FormatCurrency renders an amount the same way the reports do
func FormatCurrency(amount decimal.Decimal) string {
	return output.FormatCurrency(amount)
}

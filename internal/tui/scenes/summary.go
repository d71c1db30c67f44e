package scenes

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/finiquito/internal/roster"
	"github.com/rgehrsitz/finiquito/internal/tui/tuistyles"
)

// SummaryModel shows the roster-wide totals
type SummaryModel struct {
	summary *roster.Summary
}

// NewSummaryModel creates an empty summary scene
func NewSummaryModel() *SummaryModel {
	return &SummaryModel{}
}

// SetSummary sets the totals on display
func (m *SummaryModel) SetSummary(s roster.Summary) {
	m.summary = &s
}

// View renders one row per record plus the totals
func (m *SummaryModel) View() string {
	if m.summary == nil {
		return tuistyles.SubtitleStyle.Render("Calculando resumen...")
	}

	const row = "%-24s %16s %16s %16s\n"
	var b strings.Builder
	b.WriteString(tuistyles.TitleStyle.Render("Resumen de escenarios"))
	b.WriteString("\n\n")
	b.WriteString(tuistyles.MetricLabelStyle.Render(fmt.Sprintf(row, "Colaborador", "Escenario 1", "Escenario 2", "Escenario 3")))

	for _, e := range m.summary.Entries {
		name := truncate(e.Record.Name, 24)
		if e.Result.IsZero() {
			b.WriteString(tuistyles.WarningStyle.Render(fmt.Sprintf("%-24s %s", name, "fechas inválidas")))
			b.WriteString("\n")
			continue
		}
		fmt.Fprintf(&b, row, name,
			tuistyles.FormatCurrency(e.Result.Scenario1Total),
			tuistyles.FormatCurrency(e.Result.Scenario2Total),
			tuistyles.FormatCurrency(e.Result.Scenario3Total))
	}

	b.WriteString("\n")
	b.WriteString(tuistyles.MetricValueStyle.Render(fmt.Sprintf(row, "TOTAL",
		tuistyles.FormatCurrency(m.summary.Scenario1Total),
		tuistyles.FormatCurrency(m.summary.Scenario2Total),
		tuistyles.FormatCurrency(m.summary.Scenario3Total))))
	return b.String()
}

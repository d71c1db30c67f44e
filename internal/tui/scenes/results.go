package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/rgehrsitz/finiquito/internal/output"
	"github.com/rgehrsitz/finiquito/internal/tui/components"
	"github.com/rgehrsitz/finiquito/internal/tui/tuistyles"
)

// ResultsModel shows the breakdown, scenarios and negotiation figures of
// one record
type ResultsModel struct {
	record *domain.EmployeeRecord
	result domain.CalculationResult
	width  int
}

// NewResultsModel creates an empty results pane
func NewResultsModel() *ResultsModel {
	return &ResultsModel{width: 80}
}

// SetEntry sets the record on display
func (m *ResultsModel) SetEntry(record domain.EmployeeRecord, result domain.CalculationResult) {
	m.record = &record
	m.result = result
}

// SetSize updates the pane width
func (m *ResultsModel) SetSize(width, _ int) {
	m.width = width
}

// View renders the results pane
func (m *ResultsModel) View() string {
	if m.record == nil {
		return tuistyles.SubtitleStyle.Render("Sin colaborador seleccionado")
	}

	header := m.renderHeader()
	if m.result.IsZero() {
		warning := tuistyles.WarningStyle.Render(fmt.Sprintf(
			"Fechas inválidas (%q a %q): no se calculó ningún monto", m.record.StartDate, m.record.EndDate))
		return lipgloss.JoinVertical(lipgloss.Left, header, "", warning)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.renderBreakdown(),
		tuistyles.SectionStyle.Render("Escenarios"),
		m.renderScenarios(),
		tuistyles.SectionStyle.Render("Negociación"),
		m.renderNegotiation(),
	)
}

func (m *ResultsModel) renderHeader() string {
	r := m.record
	salary := "Salario diario " + tuistyles.FormatCurrency(r.DailySalary)
	if r.PayrollCostMode() {
		salary = "Costo nómina " + tuistyles.FormatCurrency(r.MonthlyPayrollCost) + " / mes"
	}
	sub := fmt.Sprintf("%s a %s • %s", r.StartDate, r.EndDate, salary)
	return tuistyles.TitleStyle.Render(r.Name) + "\n" + tuistyles.SubtitleStyle.Render(sub)
}

func (m *ResultsModel) renderBreakdown() string {
	res := m.result
	sdiLabel := "SDI"
	if res.IsSDIManual {
		sdiLabel = "SDI (manual)"
	}

	lines := []*components.MetricCard{
		components.NewMetricCard("Antigüedad", output.FormatYears(res)),
		components.NewAmountCard(sdiLabel, res.SDI),
		components.NewAmountCard("Salario base", res.EffectiveDailySalary),
		components.NewAmountCard(fmt.Sprintf("Aguinaldo (%d días trab.)", res.AguinaldoDaysWorked), res.ProportionalAguinaldo),
		components.NewAmountCard(fmt.Sprintf("Vacaciones (%s días)", output.FormatDays(res.NetVacationDaysToPay)), res.ProportionalVacation),
		components.NewAmountCard("Prima vacacional", res.VacationPremium),
		components.NewAmountCard("Prima de antigüedad", res.SeniorityPremium),
		components.NewAmountCard("Bonos pendientes", res.PendingBonuses()),
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line.RenderCompact())
		b.WriteString("\n")
	}
	return tuistyles.SectionStyle.Render("Desglose") + "\n" + strings.TrimRight(b.String(), "\n")
}

func (m *ResultsModel) renderScenarios() string {
	res := m.result
	cards := []*components.MetricCard{
		components.NewAmountCard("1 Finiquito de ley", res.Scenario1Total).
			WithDescription("renuncia o mutuo acuerdo"),
		components.NewAmountCard("2 Liquidación", res.Scenario2Total).
			WithDescription("despido negociado").
			WithHighlight(true),
		components.NewAmountCard("3 Riesgo demanda", res.Scenario3Total).
			WithDescription("juicio perdido"),
	}
	columns := 3
	if m.width < 84 {
		columns = 1
	}
	return components.MetricGrid(cards, columns)
}

func (m *ResultsModel) renderNegotiation() string {
	n := output.NewNegotiation(m.result)
	lines := []*components.MetricCard{
		components.NewAmountCard("Oferta inicial (sin 20 días)", n.WithoutTwentyDays),
		components.NewAmountCard("Tope (con 20 días)", n.WithTwentyDays),
		components.NewAmountCard("Margen", n.Margin),
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line.RenderCompact())
		b.WriteString("\n")
	}
	b.WriteString(tuistyles.InfoStyle.Render(output.ScenarioNotes[1]))
	return b.String()
}

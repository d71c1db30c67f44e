package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/rgehrsitz/finiquito/internal/roster"
	"github.com/shopspring/decimal"
)

var (
	consoleTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F25C05"))
	consoleSectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1F2937"))
	consoleMutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	consoleLabelStyle   = lipgloss.NewStyle().Width(30)
	consoleAmountStyle  = lipgloss.NewStyle().Width(18).Align(lipgloss.Right)
	consoleTotalStyle   = lipgloss.NewStyle().Bold(true)
	consoleWarnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626"))
)

// ConsoleFormatter renders the detailed per-record breakdown with the
// three scenarios side by side
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, consoleTitleStyle.Render("CÁLCULO DE FINIQUITO E INDEMNIZACIÓN (LFT)"))
	fmt.Fprintln(&buf, consoleMutedStyle.Render(fmt.Sprintf("Reglas: %s (%d)", report.Rules.Description, report.Rules.DataYear)))
	fmt.Fprintln(&buf)

	for _, entry := range report.Summary.Entries {
		writeConsoleEntry(&buf, entry)
	}

	if len(report.Summary.Entries) > 1 {
		fmt.Fprintln(&buf, consoleSectionStyle.Render(fmt.Sprintf("TOTALES (%d colaboradores)", len(report.Summary.Entries))))
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		fmt.Fprintf(&buf, "  Escenario 1:             %s\n", FormatCurrency(report.Summary.Scenario1Total))
		fmt.Fprintf(&buf, "  Escenario 2 (sin 20 d):  %s\n", FormatCurrency(report.Summary.Scenario2TotalWithout20Days))
		fmt.Fprintf(&buf, "  Escenario 2:             %s\n", FormatCurrency(report.Summary.Scenario2Total))
		fmt.Fprintf(&buf, "  Escenario 3:             %s\n", FormatCurrency(report.Summary.Scenario3Total))
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "CONSIDERACIONES:")
	for _, note := range ScenarioNotes {
		fmt.Fprintf(&buf, "• %s\n", note)
	}
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, consoleMutedStyle.Render(LegalNotice))

	return buf.Bytes(), nil
}

func writeConsoleEntry(buf *bytes.Buffer, entry roster.Entry) {
	record, result := entry.Record, entry.Result

	fmt.Fprintln(buf, consoleSectionStyle.Render(fmt.Sprintf("COLABORADOR: %s", record.Name)))
	fmt.Fprintln(buf, strings.Repeat("=", 50))

	if result.IsZero() {
		fmt.Fprintln(buf, consoleWarnStyle.Render(fmt.Sprintf("  Fechas inválidas (%q a %q): no se calculó ningún monto", record.StartDate, record.EndDate)))
		fmt.Fprintln(buf)
		return
	}

	sdiSource := "calculado"
	if result.IsSDIManual {
		sdiSource = "manual"
	}
	mode := "salario diario"
	if record.PayrollCostMode() {
		mode = "costo nómina " + FormatCurrency(record.MonthlyPayrollCost) + "/mes"
	}

	fmt.Fprintf(buf, "  Periodo:              %s a %s (%s)\n", record.StartDate, record.EndDate, FormatYears(result))
	fmt.Fprintf(buf, "  Antigüedad:           %s años (%d días)\n", result.AntiquityYears.StringFixed(4), result.AntiquityDaysTotal)
	fmt.Fprintf(buf, "  Modo de salario:      %s\n", mode)
	fmt.Fprintf(buf, "  Salario base diario:  %s\n", FormatCurrency(result.EffectiveDailySalary))
	fmt.Fprintf(buf, "  SDI:                  %s (%s)\n", FormatCurrency(result.SDI), sdiSource)
	fmt.Fprintln(buf)

	header := consoleLabelStyle.Render("CONCEPTO") +
		consoleAmountStyle.Render("ESCENARIO 1") +
		consoleAmountStyle.Render("ESCENARIO 2") +
		consoleAmountStyle.Render("ESCENARIO 3")
	fmt.Fprintln(buf, consoleSectionStyle.Render(header))

	all := func(v decimal.Decimal) [3]string {
		s := FormatCurrency(v)
		return [3]string{s, s, s}
	}
	rows := []struct {
		label  string
		detail string
		values [3]string
	}{
		{"Aguinaldo proporcional", fmt.Sprintf("%s días/año, %d trabajados", result.EffectiveAguinaldoDays.String(), result.AguinaldoDaysWorked), all(result.ProportionalAguinaldo)},
		{"Vacaciones pendientes", fmt.Sprintf("%s días × salario base", FormatDays(result.NetVacationDaysToPay)), all(result.ProportionalVacation)},
		{"Prima vacacional", fmt.Sprintf("%s%% sobre vacaciones", record.VacationPremiumPkg.String()), all(result.VacationPremium)},
		{"Prima de antigüedad", "12 días/año, tope 2× salario mínimo", all(result.SeniorityPremium)},
		{"Bonos pendientes", "", all(result.PendingBonuses())},
		{"Indemnización (3 meses)", "90 días × SDI", [3]string{"-", FormatCurrency(result.Indemnification3Months), FormatCurrency(result.Indemnification3Months)}},
		{"20 días por año", "20 días × años × SDI", [3]string{"-", FormatCurrency(result.Indemnification20Days), FormatCurrency(result.Indemnification20Days)}},
		{"Salarios caídos (est.)", "12 meses + intereses sobre SDI", [3]string{"-", "-", FormatCurrency(result.LostWages)}},
	}
	for _, row := range rows {
		fmt.Fprintln(buf, consoleLabelStyle.Render(row.label)+
			consoleAmountStyle.Render(row.values[0])+
			consoleAmountStyle.Render(row.values[1])+
			consoleAmountStyle.Render(row.values[2]))
		if row.detail != "" {
			fmt.Fprintln(buf, consoleMutedStyle.Render("  "+row.detail))
		}
	}

	total := consoleLabelStyle.Render("TOTAL ESTIMADO") +
		consoleAmountStyle.Render(FormatCurrency(result.Scenario1Total)) +
		consoleAmountStyle.Render(FormatCurrency(result.Scenario2Total)) +
		consoleAmountStyle.Render(FormatCurrency(result.Scenario3Total))
	fmt.Fprintln(buf, consoleTotalStyle.Render(total))
	fmt.Fprintln(buf)

	n := NewNegotiation(result)
	fmt.Fprintln(buf, "  NEGOCIACIÓN (ESCENARIO 2):")
	fmt.Fprintf(buf, "    Con 20 días/año:        %s\n", FormatCurrency(n.WithTwentyDays))
	fmt.Fprintf(buf, "    Sin 20 días/año:        %s\n", FormatCurrency(n.WithoutTwentyDays))
	fmt.Fprintf(buf, "    Margen de negociación:  %s\n", FormatCurrency(n.Margin))
	fmt.Fprintln(buf)
}

// ConsoleLiteFormatter renders one line per record with the scenario totals
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "RESUMEN DE ESCENARIOS")
	fmt.Fprintln(&buf, strings.Repeat("=", 96))
	fmt.Fprintf(&buf, "%-24s %-16s %16s %16s %16s\n", "Colaborador", "Antigüedad", "Escenario 1", "Escenario 2", "Escenario 3")
	for _, entry := range report.Summary.Entries {
		fmt.Fprintf(&buf, "%-24s %-16s %16s %16s %16s\n",
			truncate(entry.Record.Name, 24),
			liteYears(entry.Result),
			FormatCurrency(entry.Result.Scenario1Total),
			FormatCurrency(entry.Result.Scenario2Total),
			FormatCurrency(entry.Result.Scenario3Total))
	}
	fmt.Fprintln(&buf, strings.Repeat("-", 96))
	fmt.Fprintf(&buf, "%-24s %-16s %16s %16s %16s\n", "Total", "",
		FormatCurrency(report.Summary.Scenario1Total),
		FormatCurrency(report.Summary.Scenario2Total),
		FormatCurrency(report.Summary.Scenario3Total))
	return buf.Bytes(), nil
}

func liteYears(result domain.CalculationResult) string {
	if result.IsZero() {
		return "fechas inválidas"
	}
	return result.AntiquityYears.StringFixed(2) + " años"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

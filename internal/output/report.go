package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/rgehrsitz/finiquito/internal/roster"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Report is what formatters render: one or more calculated records plus
// the roster totals
type Report struct {
	GeneratedAt time.Time            `json:"generated_at" yaml:"generated_at"`
	Rules       domain.RulesMetadata `json:"rules" yaml:"rules"`
	Summary     roster.Summary       `json:"summary" yaml:"summary"`
}

// NewReport wraps a roster summary for formatting
func NewReport(summary roster.Summary, rules domain.RulesMetadata, generatedAt time.Time) *Report {
	return &Report{GeneratedAt: generatedAt, Rules: rules, Summary: summary}
}

// SingleReport builds a report for one calculated record
func SingleReport(record domain.EmployeeRecord, result domain.CalculationResult, rules domain.RulesMetadata, generatedAt time.Time) *Report {
	summary := roster.Summary{
		Entries:                     []roster.Entry{{Record: record, Result: result}},
		Scenario1Total:              result.Scenario1Total,
		Scenario2TotalWithout20Days: result.Scenario2TotalWithout20Days,
		Scenario2Total:              result.Scenario2Total,
		Scenario3Total:              result.Scenario3Total,
	}
	return NewReport(summary, rules, generatedAt)
}

var mexicanSpanish = language.MustParse("es-MX")

// FormatCurrency formats an amount the es-MX way: $1,234,567.89. Grouping
// comes from the locale; the cents stay on the decimal value.
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}

	abs := rounded.Abs()
	_, cents, _ := strings.Cut(abs.StringFixed(2), ".")
	whole := message.NewPrinter(mexicanSpanish).Sprint(number.Decimal(abs.IntPart()))
	return sign + "$" + whole + "." + cents
}

// FormatPercentage formats a percentage value with two decimals
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatDays formats a fractional day count with two decimals
func FormatDays(days decimal.Decimal) string {
	return days.StringFixed(2)
}

// FormatYears renders service as completed years plus leftover days
func FormatYears(result domain.CalculationResult) string {
	years := result.CompletedYears
	days := result.AntiquityDaysTotal - years*domain.DaysPerYear
	return fmt.Sprintf("%d %s, %d %s", years, plural(years, "año", "años"), days, plural(days, "día", "días"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

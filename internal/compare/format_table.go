package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/finiquito/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing variants
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("COMPARACIÓN DE VARIANTES\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base: %s\n\n", compSet.BaseName))

	const nameWidth, numWidth = 26, 17
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s\n",
		nameWidth, "Variante",
		numWidth, "Escenario 1",
		numWidth, "Escenario 2",
		numWidth, "Escenario 3"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth))
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth))
		}
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nDIFERENCIA CONTRA BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s: %s\n", alt.Name, alt.Description))
			sb.WriteString(fmt.Sprintf("  Escenario 1: %s\n", tf.formatDelta(alt.Scenario1Diff)))
			sb.WriteString(fmt.Sprintf("  Escenario 2: %s (%s%%)\n", tf.formatDelta(alt.Scenario2Diff), alt.Scenario2PctFromBase.StringFixed(2)))
			sb.WriteString(fmt.Sprintf("  Escenario 3: %s\n", tf.formatDelta(alt.Scenario3Diff)))
		}
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMENDACIONES\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString("• " + rec + "\n")
		}
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int) string {
	name := result.Name
	if len(name) > nameWidth {
		name = name[:nameWidth-3] + "..."
	}
	return fmt.Sprintf("%-*s %*s %*s %*s\n",
		nameWidth, name,
		numWidth, output.FormatCurrency(result.Result.Scenario1Total),
		numWidth, output.FormatCurrency(result.Result.Scenario2Total),
		numWidth, output.FormatCurrency(result.Result.Scenario3Total))
}

// formatDelta renders a signed currency difference
func (tf *TableFormatter) formatDelta(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + output.FormatCurrency(d)
	}
	return output.FormatCurrency(d)
}

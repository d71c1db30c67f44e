package breakeven

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/finiquito/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats optimization results as a console table
type TableFormatter struct{}

// Format generates a formatted table for an optimization result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("PUNTO DE EQUILIBRIO\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	c := result.Request.Constraints
	sb.WriteString(fmt.Sprintf("Colaborador:   %s\n", result.Record.Name))
	sb.WriteString(fmt.Sprintf("Objetivo:      %s\n", result.Request.Target))
	sb.WriteString(fmt.Sprintf("Escenario:     %d\n", c.Scenario))
	sb.WriteString(fmt.Sprintf("Presupuesto:   %s\n", output.FormatCurrency(c.Budget)))
	sb.WriteString(fmt.Sprintf("Estado:        %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iteraciones:   %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergencia:  %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("PARÁMETRO ENCONTRADO\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if result.OptimalEndDate != "" {
		sb.WriteString(fmt.Sprintf("Fecha de baja:     %s\n", result.OptimalEndDate))
	}
	if result.OptimalDailySalary != nil {
		sb.WriteString(fmt.Sprintf("Salario diario:    %s\n", output.FormatCurrency(*result.OptimalDailySalary)))
	}
	sb.WriteString("\n")

	sb.WriteString("RESULTADO\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Años completos:    %d\n", result.Result.CompletedYears))
	sb.WriteString(fmt.Sprintf("Escenario 1:       %s\n", output.FormatCurrency(result.Result.Scenario1Total)))
	sb.WriteString(fmt.Sprintf("Escenario 2:       %s\n", output.FormatCurrency(result.Result.Scenario2Total)))
	sb.WriteString(fmt.Sprintf("Escenario 3:       %s\n", output.FormatCurrency(result.Result.Scenario3Total)))
	sb.WriteString(fmt.Sprintf("Diferencia:        %s%s\n", tf.deltaSymbol(result.Difference), output.FormatCurrency(result.Difference.Abs())))

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Convergió"
	}
	return "⚠ No convergió"
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsNegative() {
		return "-"
	}
	return "+"
}

package output

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/finiquito/internal/calculation"
	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/rgehrsitz/finiquito/internal/roster"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var generatedAt = time.Date(2024, time.January, 2, 9, 0, 0, 0, time.UTC)

func referenceRecord() domain.EmployeeRecord {
	return domain.EmployeeRecord{
		ID:                 "ana",
		Name:               "Ana López",
		DailySalary:        decimal.NewFromInt(500),
		StartDate:          "2020-01-01",
		EndDate:            "2024-01-01",
		AguinaldoDays:      decimal.NewFromInt(15),
		VacationPremiumPkg: decimal.NewFromInt(25),
		MinimumWage:        decimal.RequireFromString("248.93"),
	}
}

func buildTestReport(records ...domain.EmployeeRecord) *Report {
	engine := calculation.NewCalculationEngine()
	var summary roster.Summary
	for _, record := range records {
		result := engine.Calculate(record)
		summary.Entries = append(summary.Entries, roster.Entry{Record: record, Result: result})
		summary.Scenario1Total = summary.Scenario1Total.Add(result.Scenario1Total)
		summary.Scenario2TotalWithout20Days = summary.Scenario2TotalWithout20Days.Add(result.Scenario2TotalWithout20Days)
		summary.Scenario2Total = summary.Scenario2Total.Add(result.Scenario2Total)
		summary.Scenario3Total = summary.Scenario3Total.Add(result.Scenario3Total)
	}
	return NewReport(summary, engine.Rules.Metadata, generatedAt)
}

func invalidRecord() domain.EmployeeRecord {
	r := referenceRecord()
	r.ID = "bad"
	r.Name = "Fechas Malas"
	r.StartDate = "2025-01-01"
	return r
}

func TestFormatterFunc(t *testing.T) {
	called := false
	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(report *Report) ([]byte, error) {
			called = true
			return []byte("test output"), nil
		},
	}

	out, err := formatter.Format(buildTestReport(referenceRecord()))
	assert.NoError(t, err)
	assert.True(t, called, "Should call the function")
	assert.Equal(t, []byte("test output"), out)
	assert.Equal(t, "test-formatter", formatter.Name())
}

func TestWriteFormatted(t *testing.T) {
	tmpDir := t.TempDir()
	originalDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer os.Chdir(originalDir)

	formatter := FormatterFunc{
		ID: "test-formatter",
		F:  func(*Report) ([]byte, error) { return []byte("test output content"), nil },
	}

	filename, err := WriteFormatted(formatter, buildTestReport(referenceRecord()), "txt")
	require.NoError(t, err)
	assert.Contains(t, filename, "finiquito_report_")
	assert.True(t, strings.HasSuffix(filename, ".txt"))

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "test output content", string(content))
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	formatter := FormatterFunc{
		ID: "error-formatter",
		F:  func(*Report) ([]byte, error) { return nil, fmt.Errorf("formatter error") },
	}

	filename, err := WriteFormatted(formatter, buildTestReport(referenceRecord()), "txt")
	assert.Error(t, err)
	assert.Empty(t, filename)
	assert.Contains(t, err.Error(), "formatter error")
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"console", "console"},
		{"verbose", "console"},
		{"console-lite", "console-lite"},
		{"text", "console-lite"},
		{"CSV", "csv"},
		{"detailed-csv", "detailed-csv"},
		{"json", "json"},
		{"yml", "yaml"},
		{"html", "html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := GetFormatterByName(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.want, f.Name())
		})
	}

	assert.Nil(t, GetFormatterByName("non-existent"))
}

func TestAvailableFormatterNames(t *testing.T) {
	assert.Equal(t, []string{"console", "console-lite", "csv", "detailed-csv", "html", "json", "yaml"}, AvailableFormatterNames())
	assert.Contains(t, AvailableFormatAliases(), "verbose")
}

func TestConsoleFormatter_Format(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport(referenceRecord()))
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "CÁLCULO DE FINIQUITO")
	assert.Contains(t, content, "COLABORADOR: Ana López")
	assert.Contains(t, content, "4 años, 2 días")
	assert.Contains(t, content, "$527.40 (calculado)")
	assert.Contains(t, content, "$61,484.81")
	assert.Contains(t, content, "$151,200.14")
	assert.Contains(t, content, "$400,659.05")
	assert.Contains(t, content, "Sin 20 días/año:        $108,950.56")
	assert.NotContains(t, content, "TOTALES", "single record has no totals section")
}

func TestConsoleFormatter_InvalidDatesAndTotals(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport(referenceRecord(), invalidRecord()))
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "Fechas inválidas")
	assert.Contains(t, content, "TOTALES (2 colaboradores)")
	assert.Contains(t, content, "Escenario 3:             $400,659.05")
}

func TestConsoleLiteFormatter_Format(t *testing.T) {
	out, err := ConsoleLiteFormatter{}.Format(buildTestReport(referenceRecord(), invalidRecord()))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	assert.Equal(t, "RESUMEN DE ESCENARIOS", lines[0])
	assert.Contains(t, lines[3], "Ana López")
	assert.Contains(t, lines[3], "4.01 años")
	assert.Contains(t, lines[4], "fechas inválidas")
	assert.Contains(t, lines[len(lines)-1], "$400,659.05")
}

func TestCSVSummarizer_Format(t *testing.T) {
	out, err := CSVSummarizer{}.Format(buildTestReport(referenceRecord()))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID,Name,"))
	assert.Equal(t, "ana,Ana López,2020-01-01,2024-01-01,4.0055,527.40,61484.81,108950.56,151200.14,400659.05", lines[1])
}

func TestDetailedCSVFormatter_Format(t *testing.T) {
	out, err := DetailedCSVFormatter{}.Format(buildTestReport(referenceRecord()))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	header := strings.Split(lines[0], ",")
	row := strings.Split(lines[1], ",")
	require.Equal(t, len(header), len(row))

	field := func(name string) string {
		for i, h := range header {
			if h == name {
				return row[i]
			}
		}
		t.Fatalf("missing column %s", name)
		return ""
	}
	assert.Equal(t, "1462", field("AntiquityDaysTotal"))
	assert.Equal(t, "20", field("VacationDaysEntitledCurrentYear"))
	assert.Equal(t, "0.00", field("PendingBonuses"))
	assert.Equal(t, "false", field("IsSDIManual"))
}

func TestJSONFormatter_Format(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReport(referenceRecord()))
	require.NoError(t, err)

	var decoded struct {
		Rules   domain.RulesMetadata `json:"rules"`
		Summary struct {
			Entries []struct {
				Record domain.EmployeeRecord    `json:"record"`
				Result domain.CalculationResult `json:"result"`
			} `json:"entries"`
			Scenario3Total decimal.Decimal `json:"scenario3_total"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))

	require.Len(t, decoded.Summary.Entries, 1)
	assert.Equal(t, "ana", decoded.Summary.Entries[0].Record.ID)
	assert.Equal(t, "527.40", decoded.Summary.Entries[0].Result.SDI.StringFixed(2))
	assert.Equal(t, 1462, decoded.Summary.Entries[0].Result.AntiquityDaysTotal)
	assert.Equal(t, "400659.05", decoded.Summary.Scenario3Total.StringFixed(2))
	assert.Equal(t, 2024, decoded.Rules.DataYear)
}

func TestYAMLFormatter_Format(t *testing.T) {
	out, err := YAMLFormatter{}.Format(buildTestReport(referenceRecord()))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Contains(t, decoded, "summary")
	assert.Contains(t, string(out), "scenario2_total_without_20_days")
}

func TestHTMLFormatter_Format(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestReport(referenceRecord(), invalidRecord()))
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "<!DOCTYPE html>")
	assert.Contains(t, content, "<title>")
	assert.Contains(t, content, "Ana López")
	assert.Contains(t, content, "$400,659.05")
	assert.Contains(t, content, "Margen de negociación")
	assert.Contains(t, content, "Fechas inválidas")
	assert.Contains(t, content, "Totales")
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"5", "$5.00"},
		{"999.999", "$1,000.00"},
		{"1234.5", "$1,234.50"},
		{"61484.810520547945", "$61,484.81"},
		{"1234567.891", "$1,234,567.89"},
		{"-1234.5", "-$1,234.50"},
		{"-0.001", "$0.00"},
		{"12.345", "$12.35"},
		{"1000000000", "$1,000,000,000.00"},
		{"-641046.875", "-$641,046.88"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatYears(t *testing.T) {
	tests := []struct {
		days      int
		completed int
		want      string
	}{
		{1462, 4, "4 años, 2 días"},
		{366, 1, "1 año, 1 día"},
		{1, 0, "0 años, 1 día"},
		{730, 2, "2 años, 0 días"},
	}
	for _, tt := range tests {
		result := domain.CalculationResult{AntiquityDaysTotal: tt.days, CompletedYears: tt.completed}
		assert.Equal(t, tt.want, FormatYears(result))
	}
}

func TestNewNegotiation(t *testing.T) {
	result := calculation.NewCalculationEngine().Calculate(referenceRecord())
	n := NewNegotiation(result)

	assert.Equal(t, "151200.14", n.WithTwentyDays.StringFixed(2))
	assert.Equal(t, "108950.56", n.WithoutTwentyDays.StringFixed(2))
	assert.True(t, n.Margin.Equal(result.Indemnification20Days))
	assert.True(t, n.WithTwentyDays.Sub(n.WithoutTwentyDays).Equal(n.Margin))
}

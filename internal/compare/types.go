package compare

import (
	"fmt"

	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/rgehrsitz/finiquito/internal/output"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one calculated variant of a record
type ComparisonResult struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Record      domain.EmployeeRecord    `json:"record"`
	Result      domain.CalculationResult `json:"result"`

	// Comparison to base
	Scenario1Diff        decimal.Decimal `json:"scenario1_diff"`
	Scenario2Diff        decimal.Decimal `json:"scenario2_diff"`
	Scenario3Diff        decimal.Decimal `json:"scenario3_diff"`
	Scenario2PctFromBase decimal.Decimal `json:"scenario2_pct_from_base"`
	CompletedYearsDiff   int             `json:"completed_years_diff"`
}

// ComparisonSet is a base record compared against its variants
type ComparisonSet struct {
	BaseName           string             `json:"base_name"`
	BaseResult         *ComparisonResult  `json:"base_result"`
	AlternativeResults []ComparisonResult `json:"alternative_results"`
	Recommendations    []string           `json:"recommendations"`
}

// MetricsCalculator derives comparison figures from calculated results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics wraps a calculated record as a comparison result
func (mc *MetricsCalculator) CalculateMetrics(name string, record domain.EmployeeRecord, result domain.CalculationResult) ComparisonResult {
	return ComparisonResult{
		Name:   name,
		Record: record,
		Result: result,
	}
}

// CalculateComparison fills in the differences between a variant and the base
func (mc *MetricsCalculator) CalculateComparison(variant, base ComparisonResult) ComparisonResult {
	variant.Scenario1Diff = variant.Result.Scenario1Total.Sub(base.Result.Scenario1Total)
	variant.Scenario2Diff = variant.Result.Scenario2Total.Sub(base.Result.Scenario2Total)
	variant.Scenario3Diff = variant.Result.Scenario3Total.Sub(base.Result.Scenario3Total)

	if !base.Result.Scenario2Total.IsZero() {
		variant.Scenario2PctFromBase = variant.Scenario2Diff.
			Div(base.Result.Scenario2Total).
			Mul(decimal.NewFromInt(100))
	}

	variant.CompletedYearsDiff = variant.Result.CompletedYears - base.Result.CompletedYears
	return variant
}

// GenerateRecommendations summarizes which variants move the scenario 2
// settlement the most
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}
	if len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	highest, lowest := -1, -1
	for i, alt := range compSet.AlternativeResults {
		if alt.Scenario2Diff.IsPositive() && (highest < 0 || alt.Scenario2Diff.GreaterThan(compSet.AlternativeResults[highest].Scenario2Diff)) {
			highest = i
		}
		if alt.Scenario2Diff.IsNegative() && (lowest < 0 || alt.Scenario2Diff.LessThan(compSet.AlternativeResults[lowest].Scenario2Diff)) {
			lowest = i
		}
	}

	if highest >= 0 {
		alt := compSet.AlternativeResults[highest]
		recommendations = append(recommendations, fmt.Sprintf(
			"Mayor costo: %s eleva la liquidación (escenario 2) en %s (%s%%)",
			alt.Name, output.FormatCurrency(alt.Scenario2Diff), alt.Scenario2PctFromBase.StringFixed(2)))
	}
	if lowest >= 0 {
		alt := compSet.AlternativeResults[lowest]
		recommendations = append(recommendations, fmt.Sprintf(
			"Menor costo: %s reduce la liquidación (escenario 2) en %s",
			alt.Name, output.FormatCurrency(alt.Scenario2Diff.Abs())))
	}

	for _, alt := range compSet.AlternativeResults {
		if alt.CompletedYearsDiff != 0 {
			recommendations = append(recommendations, fmt.Sprintf(
				"%s cambia los años completos de servicio de %d a %d (vacaciones y prima de antigüedad)",
				alt.Name, compSet.BaseResult.Result.CompletedYears, alt.Result.CompletedYears))
		}
	}

	return recommendations
}

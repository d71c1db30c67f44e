package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Variant",
		"Type",
		"End Date",
		"Daily Salary",
		"SDI",
		"Completed Years",
		"Scenario 1",
		"Scenario 2",
		"Scenario 3",
		"Scenario 1 Diff",
		"Scenario 2 Diff",
		"Scenario 3 Diff",
		"Scenario 2 % Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}
	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, variantType string) []string {
	r := result.Result
	return []string{
		result.Name,
		variantType,
		result.Record.EndDate,
		r.EffectiveDailySalary.StringFixed(2),
		r.SDI.StringFixed(2),
		strconv.Itoa(r.CompletedYears),
		r.Scenario1Total.StringFixed(2),
		r.Scenario2Total.StringFixed(2),
		r.Scenario3Total.StringFixed(2),
		result.Scenario1Diff.StringFixed(2),
		result.Scenario2Diff.StringFixed(2),
		result.Scenario3Diff.StringFixed(2),
		result.Scenario2PctFromBase.StringFixed(2),
	}
}

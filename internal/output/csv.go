package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/finiquito/internal/roster"
)

// CSVSummarizer implements the summary CSV output (one row per record).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *Report) ([]byte, error) {
	header := []string{"ID", "Name", "StartDate", "EndDate", "AntiquityYears", "SDI", "Scenario1Total", "Scenario2TotalWithout20Days", "Scenario2Total", "Scenario3Total"}
	return writeCSV(header, report.Summary.Entries, func(e roster.Entry) []string {
		return []string{
			e.Record.ID,
			e.Record.Name,
			e.Record.StartDate,
			e.Record.EndDate,
			e.Result.AntiquityYears.StringFixed(4),
			e.Result.SDI.StringFixed(2),
			e.Result.Scenario1Total.StringFixed(2),
			e.Result.Scenario2TotalWithout20Days.StringFixed(2),
			e.Result.Scenario2Total.StringFixed(2),
			e.Result.Scenario3Total.StringFixed(2),
		}
	})
}

// DetailedCSVFormatter writes every calculated figure per record.
type DetailedCSVFormatter struct{}

func (d DetailedCSVFormatter) Name() string { return "detailed-csv" }

func (d DetailedCSVFormatter) Format(report *Report) ([]byte, error) {
	header := []string{
		"ID", "Name", "StartDate", "EndDate",
		"EffectiveDailySalary", "SDI", "IsSDIManual",
		"AntiquityDaysTotal", "AntiquityYears", "CompletedYears",
		"VacationDaysEntitledCurrentYear", "DaysWorkedSinceAnniversary",
		"EffectiveAguinaldoDays", "AguinaldoDaysWorked", "ProportionalAguinaldo",
		"TotalVacationDaysEarnedHistory", "NetVacationDaysToPay", "ProportionalVacation", "VacationPremium",
		"SeniorityPremium", "PendingBonuses",
		"Indemnification3Months", "Indemnification20Days", "LostWages",
		"Scenario1Total", "Scenario2TotalWithout20Days", "Scenario2Total", "Scenario3Total",
	}
	return writeCSV(header, report.Summary.Entries, func(e roster.Entry) []string {
		r := e.Result
		return []string{
			e.Record.ID, e.Record.Name, e.Record.StartDate, e.Record.EndDate,
			r.EffectiveDailySalary.StringFixed(2), r.SDI.StringFixed(2), strconv.FormatBool(r.IsSDIManual),
			strconv.Itoa(r.AntiquityDaysTotal), r.AntiquityYears.StringFixed(4), strconv.Itoa(r.CompletedYears),
			strconv.Itoa(r.VacationDaysEntitledCurrentYear), strconv.Itoa(r.DaysWorkedSinceAnniversary),
			r.EffectiveAguinaldoDays.String(), strconv.Itoa(r.AguinaldoDaysWorked), r.ProportionalAguinaldo.StringFixed(2),
			r.TotalVacationDaysEarnedHistory.StringFixed(4), r.NetVacationDaysToPay.StringFixed(4), r.ProportionalVacation.StringFixed(2), r.VacationPremium.StringFixed(2),
			r.SeniorityPremium.StringFixed(2), r.PendingBonuses().StringFixed(2),
			r.Indemnification3Months.StringFixed(2), r.Indemnification20Days.StringFixed(2), r.LostWages.StringFixed(2),
			r.Scenario1Total.StringFixed(2), r.Scenario2TotalWithout20Days.StringFixed(2), r.Scenario2Total.StringFixed(2), r.Scenario3Total.StringFixed(2),
		}
	})
}

func writeCSV(header []string, entries []roster.Entry, row func(roster.Entry) []string) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, e := range entries {
		if err := w.Write(row(e)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

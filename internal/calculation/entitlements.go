package calculation

import (
	"time"

	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/shopspring/decimal"
)

const seniorityDaysPerYear = 12

// Entitlements are the accrued-but-unpaid benefits owed on any separation
type Entitlements struct {
	AguinaldoDaysWorked  int
	Aguinaldo            decimal.Decimal
	DaysSinceAnniversary int
	VacationDaysEarned   decimal.Decimal
	NetVacationDays      decimal.Decimal
	Vacation             decimal.Decimal
	VacationPremium      decimal.Decimal
	SeniorityPremium     decimal.Decimal
}

// CalculateEntitlements computes the prorated aguinaldo, the historical
// vacation balance with its premium, and the capped seniority premium
func CalculateEntitlements(record domain.EmployeeRecord, service ServiceDuration, salary SalaryBasis, effectiveAguinaldoDays decimal.Decimal, table domain.VacationTable) Entitlements {
	var e Entitlements

	// Aguinaldo: (days / 365) × days worked this calendar year × base
	e.AguinaldoDaysWorked = AguinaldoDaysWorked(service)
	e.Aguinaldo = effectiveAguinaldoDays.
		Mul(decimal.NewFromInt(int64(e.AguinaldoDaysWorked))).
		Mul(salary.Base).
		Div(daysPerYear)

	// Vacation: full tiers for completed years plus the running year prorated
	earned := 0
	for year := 1; year <= service.CompletedYears; year++ {
		earned += table.DaysFor(year)
	}
	e.DaysSinceAnniversary = clampDays(inclusiveDays(service.LastAnniversary(), service.End))
	currentYear := decimal.NewFromInt(int64(e.DaysSinceAnniversary)).
		Mul(decimal.NewFromInt(int64(table.DaysFor(service.CompletedYears + 1)))).
		Div(daysPerYear)
	e.VacationDaysEarned = decimal.NewFromInt(int64(earned)).Add(currentYear)
	e.NetVacationDays = decimal.Max(decimal.Zero, e.VacationDaysEarned.Sub(record.VacationDaysTaken))
	e.Vacation = e.NetVacationDays.Mul(salary.Base)
	e.VacationPremium = e.Vacation.Mul(record.VacationPremiumPkg).Div(hundred)

	// Seniority: 12 days per year of service on a wage capped at twice the minimum
	capped := decimal.Min(salary.SeniorityBasis, record.MinimumWage.Mul(decimal.NewFromInt(2)))
	e.SeniorityPremium = perYearOfService(service, capped.Mul(decimal.NewFromInt(seniorityDaysPerYear)))

	return e
}

// AguinaldoDaysWorked counts the days worked in the calendar year of the end
// date, from January 1 or the hire date if later, bounded to 0..365
func AguinaldoDaysWorked(service ServiceDuration) int {
	from := time.Date(service.End.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	if service.Start.After(from) {
		from = service.Start
	}
	return clampDays(inclusiveDays(from, service.End))
}

// perYearOfService scales an annual amount by service.Years, the same
// rounded quotient reported as AntiquityYears, so the per-year terms can be
// recomputed from the result exactly.
func perYearOfService(service ServiceDuration, annual decimal.Decimal) decimal.Decimal {
	return annual.Mul(service.Years)
}

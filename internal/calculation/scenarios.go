package calculation

import (
	"github.com/shopspring/decimal"
)

// Fixed terms of the dismissal and litigation scenarios
var (
	constitutionalIndemnityDays = decimal.NewFromInt(90)
	seniorityIndemnityDays      = decimal.NewFromInt(20)
	lostWagesDays               = decimal.NewFromInt(365)
	// Interest accrues on at most 15 months of wages at 2% monthly,
	// estimated over 12 months of litigation
	interestBaseDays    = decimal.NewFromInt(15 * 30)
	monthlyInterestRate = decimal.RequireFromString("0.02")
	interestMonths      = decimal.NewFromInt(12)
)

// Scenarios holds the three escalating settlement totals
type Scenarios struct {
	Indemnification3Months      decimal.Decimal
	Indemnification20Days       decimal.Decimal
	LostWages                   decimal.Decimal
	Scenario1Total              decimal.Decimal
	Scenario2TotalWithout20Days decimal.Decimal
	Scenario2Total              decimal.Decimal
	Scenario3Total              decimal.Decimal
}

// AggregateScenarios folds entitlements and the SDI-based terms into
// cumulative totals, each a superset of the one before:
//
//	1 voluntary settlement  = entitlements + pending bonuses
//	2 negotiated dismissal  = 1 + 90 days SDI + 20 days SDI per year
//	3 litigation risk       = 2 + lost wages with interest
func AggregateScenarios(service ServiceDuration, salary SalaryBasis, e Entitlements, pendingBonuses decimal.Decimal) Scenarios {
	var s Scenarios

	s.Indemnification3Months = constitutionalIndemnityDays.Mul(salary.SDI)
	s.Indemnification20Days = perYearOfService(service, seniorityIndemnityDays.Mul(salary.SDI))

	interest := interestBaseDays.Mul(salary.SDI).Mul(monthlyInterestRate).Mul(interestMonths)
	s.LostWages = lostWagesDays.Mul(salary.SDI).Add(interest)

	s.Scenario1Total = e.Aguinaldo.
		Add(e.Vacation).
		Add(e.VacationPremium).
		Add(e.SeniorityPremium).
		Add(pendingBonuses)
	s.Scenario2TotalWithout20Days = s.Scenario1Total.Add(s.Indemnification3Months)
	s.Scenario2Total = s.Scenario2TotalWithout20Days.Add(s.Indemnification20Days)
	s.Scenario3Total = s.Scenario2Total.Add(s.LostWages)

	return s
}

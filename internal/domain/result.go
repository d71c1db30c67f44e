package domain

import "github.com/shopspring/decimal"

// CalculationResult holds every figure derived for one EmployeeRecord.
// Amounts are exact; rounding happens only when formatting.
type CalculationResult struct {
	// Salary bases
	SDI                  decimal.Decimal `json:"sdi" yaml:"sdi"`
	IsSDIManual          bool            `json:"is_sdi_manual" yaml:"is_sdi_manual"`
	EffectiveDailySalary decimal.Decimal `json:"effective_daily_salary" yaml:"effective_daily_salary"`

	// Service duration
	AntiquityYears                  decimal.Decimal `json:"antiquity_years" yaml:"antiquity_years"`
	AntiquityDaysTotal              int             `json:"antiquity_days_total" yaml:"antiquity_days_total"`
	CompletedYears                  int             `json:"completed_years" yaml:"completed_years"`
	VacationDaysEntitledCurrentYear int             `json:"vacation_days_entitled_current_year" yaml:"vacation_days_entitled_current_year"`
	DaysWorkedSinceAnniversary      int             `json:"days_worked_since_anniversary" yaml:"days_worked_since_anniversary"`

	// Proportional entitlements
	ProportionalAguinaldo          decimal.Decimal `json:"proportional_aguinaldo" yaml:"proportional_aguinaldo"`
	EffectiveAguinaldoDays         decimal.Decimal `json:"effective_aguinaldo_days" yaml:"effective_aguinaldo_days"`
	AguinaldoDaysWorked            int             `json:"aguinaldo_days_worked" yaml:"aguinaldo_days_worked"`
	TotalVacationDaysEarnedHistory decimal.Decimal `json:"total_vacation_days_earned_history" yaml:"total_vacation_days_earned_history"`
	NetVacationDaysToPay           decimal.Decimal `json:"net_vacation_days_to_pay" yaml:"net_vacation_days_to_pay"`
	ProportionalVacation           decimal.Decimal `json:"proportional_vacation" yaml:"proportional_vacation"`
	VacationPremium                decimal.Decimal `json:"vacation_premium" yaml:"vacation_premium"`
	SeniorityPremium               decimal.Decimal `json:"seniority_premium" yaml:"seniority_premium"`

	// Dismissal and litigation terms
	Indemnification3Months decimal.Decimal `json:"indemnification_3_months" yaml:"indemnification_3_months"`
	Indemnification20Days  decimal.Decimal `json:"indemnification_20_days" yaml:"indemnification_20_days"`
	LostWages              decimal.Decimal `json:"lost_wages" yaml:"lost_wages"`

	// Totals
	Scenario1Total              decimal.Decimal `json:"scenario1_total" yaml:"scenario1_total"`
	Scenario2Total              decimal.Decimal `json:"scenario2_total" yaml:"scenario2_total"`
	Scenario2TotalWithout20Days decimal.Decimal `json:"scenario2_total_without_20_days" yaml:"scenario2_total_without_20_days"`
	Scenario3Total              decimal.Decimal `json:"scenario3_total" yaml:"scenario3_total"`
}

// ZeroResult is the sentinel returned for unusable dates. Everything is zero
// except the effective aguinaldo days, which always honor the legal floor.
func ZeroResult(effectiveAguinaldoDays decimal.Decimal) CalculationResult {
	return CalculationResult{EffectiveAguinaldoDays: effectiveAguinaldoDays}
}

// NegotiationMargin is the amount separating the two scenario 2 offers
func (r CalculationResult) NegotiationMargin() decimal.Decimal {
	return r.Scenario2Total.Sub(r.Scenario2TotalWithout20Days)
}

// AcquiredRights is scenario 1 without pending bonuses
func (r CalculationResult) AcquiredRights() decimal.Decimal {
	return r.ProportionalAguinaldo.
		Add(r.ProportionalVacation).
		Add(r.VacationPremium).
		Add(r.SeniorityPremium)
}

// PendingBonuses recovers the bonus component folded into scenario 1
func (r CalculationResult) PendingBonuses() decimal.Decimal {
	return r.Scenario1Total.Sub(r.AcquiredRights())
}

// IsZero reports whether r carries no settlement figures at all
func (r CalculationResult) IsZero() bool {
	return r.AntiquityDaysTotal == 0 && r.Scenario3Total.IsZero()
}

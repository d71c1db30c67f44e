package calculation

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidDates is returned when a start or end date cannot be parsed
	ErrInvalidDates = errors.New("invalid employment dates")
	// ErrInvertedDates is returned when the start date is after the end date
	ErrInvertedDates = errors.New("start date is after end date")
)

// CalculationEngine runs the severance pipeline for single employment records.
// It holds no per-call state and is safe for concurrent use.
type CalculationEngine struct {
	Rules  domain.LFTRules
	Logger Logger
}

// NewCalculationEngine creates an engine with the built-in LFT rules
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithRules(domain.DefaultLFTRules())
}

// NewCalculationEngineWithRules creates an engine using the given rules set
func NewCalculationEngineWithRules(rules domain.LFTRules) *CalculationEngine {
	return &CalculationEngine{
		Rules:  rules,
		Logger: NopLogger{},
	}
}

// SetLogger replaces the engine logger; nil restores the no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Calculate derives every settlement figure for the record. Unparseable or
// inverted dates do not fail: they yield the zero sentinel, so callers that
// must tell "nothing owed" from "bad input" should use CalculateChecked.
func (ce *CalculationEngine) Calculate(record domain.EmployeeRecord) domain.CalculationResult {
	effectiveAguinaldoDays := ce.EffectiveAguinaldoDays(record.AguinaldoDays)

	service, err := ResolveService(record.StartDate, record.EndDate)
	if err != nil {
		ce.Logger.Debugf("record %s: %v, returning zero result", record.ID, err)
		return domain.ZeroResult(effectiveAguinaldoDays)
	}

	table := ce.Rules.VacationTable
	upcomingEntitlement := table.DaysFor(service.CompletedYears + 1)

	salary := NormalizeSalary(record, effectiveAguinaldoDays, upcomingEntitlement, ce.Rules.SalaryFactors)
	entitlements := CalculateEntitlements(record, service, salary, effectiveAguinaldoDays, table)
	scenarios := AggregateScenarios(service, salary, entitlements, record.PendingBonuses)

	ce.Logger.Debugf("record %s: %d days, base %s, SDI %s (manual=%t), scenario 3 %s",
		record.ID, service.DaysTotal, salary.Base.StringFixed(2), salary.SDI.StringFixed(2),
		salary.IsSDIManual, scenarios.Scenario3Total.StringFixed(2))

	return domain.CalculationResult{
		SDI:                             salary.SDI,
		IsSDIManual:                     salary.IsSDIManual,
		EffectiveDailySalary:            salary.Base,
		AntiquityYears:                  service.Years,
		AntiquityDaysTotal:              service.DaysTotal,
		CompletedYears:                  service.CompletedYears,
		VacationDaysEntitledCurrentYear: upcomingEntitlement,
		DaysWorkedSinceAnniversary:      entitlements.DaysSinceAnniversary,
		ProportionalAguinaldo:           entitlements.Aguinaldo,
		EffectiveAguinaldoDays:          effectiveAguinaldoDays,
		AguinaldoDaysWorked:             entitlements.AguinaldoDaysWorked,
		TotalVacationDaysEarnedHistory:  entitlements.VacationDaysEarned,
		NetVacationDaysToPay:            entitlements.NetVacationDays,
		ProportionalVacation:            entitlements.Vacation,
		VacationPremium:                 entitlements.VacationPremium,
		SeniorityPremium:                entitlements.SeniorityPremium,
		Indemnification3Months:          scenarios.Indemnification3Months,
		Indemnification20Days:           scenarios.Indemnification20Days,
		LostWages:                       scenarios.LostWages,
		Scenario1Total:                  scenarios.Scenario1Total,
		Scenario2Total:                  scenarios.Scenario2Total,
		Scenario2TotalWithout20Days:     scenarios.Scenario2TotalWithout20Days,
		Scenario3Total:                  scenarios.Scenario3Total,
	}
}

// CalculateChecked validates the record before calculating it
func (ce *CalculationEngine) CalculateChecked(record domain.EmployeeRecord) (domain.CalculationResult, error) {
	if err := ce.Validate(record); err != nil {
		return domain.ZeroResult(ce.EffectiveAguinaldoDays(record.AguinaldoDays)), err
	}
	return ce.Calculate(record), nil
}

// Validate reports the first problem that would make Calculate return a
// meaningless result
func (ce *CalculationEngine) Validate(record domain.EmployeeRecord) error {
	if _, err := ResolveService(record.StartDate, record.EndDate); err != nil {
		return fmt.Errorf("record %q: %w", record.ID, err)
	}

	amounts := []struct {
		name  string
		value decimal.Decimal
	}{
		{"daily salary", record.DailySalary},
		{"monthly payroll cost", record.MonthlyPayrollCost},
		{"manual SDI", record.ManualSDI},
		{"minimum wage", record.MinimumWage},
		{"vacation days taken", record.VacationDaysTaken},
		{"pending bonuses", record.PendingBonuses},
	}
	for _, amount := range amounts {
		if amount.value.IsNegative() {
			return fmt.Errorf("record %q: %s cannot be negative", record.ID, amount.name)
		}
	}

	if record.VacationPremiumPkg.IsNegative() || record.VacationPremiumPkg.GreaterThan(hundred) {
		return fmt.Errorf("record %q: vacation premium must be between 0 and 100", record.ID)
	}
	return nil
}

// EffectiveAguinaldoDays applies the statutory floor to the contractual days
func (ce *CalculationEngine) EffectiveAguinaldoDays(days decimal.Decimal) decimal.Decimal {
	return decimal.Max(days, ce.Rules.MinimumAguinaldoDays)
}

package transform

import (
	"fmt"

	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ShiftEndDate moves the termination date by a number of months and days.
// This is useful for exploring "terminate later" or "terminate earlier" cases.
type ShiftEndDate struct {
	Months int
	Days   int
}

func (st *ShiftEndDate) Name() string {
	return "shift_end_date"
}

func (st *ShiftEndDate) Description() string {
	return fmt.Sprintf("Shift the end date by %d months and %d days", st.Months, st.Days)
}

func (st *ShiftEndDate) Validate(base domain.EmployeeRecord) error {
	if st.Months == 0 && st.Days == 0 {
		return NewTransformError(st.Name(), "validate", "months or days must be non-zero", nil)
	}
	start, err := domain.ParseDate(base.StartDate)
	if err != nil {
		return NewTransformError(st.Name(), "validate", "record has no valid start date", err)
	}
	end, err := domain.ParseDate(base.EndDate)
	if err != nil {
		return NewTransformError(st.Name(), "validate", "record has no valid end date", err)
	}
	if end.AddDate(0, st.Months, st.Days).Before(start) {
		return NewTransformError(st.Name(), "validate", "shifted end date falls before the start date", nil)
	}
	return nil
}

func (st *ShiftEndDate) Apply(base domain.EmployeeRecord) (domain.EmployeeRecord, error) {
	end, err := domain.ParseDate(base.EndDate)
	if err != nil {
		return base, NewTransformError(st.Name(), "apply", "invalid end date", err)
	}
	modified := base
	modified.EndDate = end.AddDate(0, st.Months, st.Days).Format(domain.DateLayout)
	return modified, nil
}

// SetEndDate replaces the termination date.
type SetEndDate struct {
	Date string // YYYY-MM-DD
}

func (st *SetEndDate) Name() string {
	return "set_end_date"
}

func (st *SetEndDate) Description() string {
	return fmt.Sprintf("Set the end date to %s", st.Date)
}

func (st *SetEndDate) Validate(base domain.EmployeeRecord) error {
	end, err := domain.ParseDate(st.Date)
	if err != nil {
		return NewTransformError(st.Name(), "validate", fmt.Sprintf("invalid date %q", st.Date), err)
	}
	if start, err := domain.ParseDate(base.StartDate); err == nil && end.Before(start) {
		return NewTransformError(st.Name(), "validate", "end date falls before the start date", nil)
	}
	return nil
}

func (st *SetEndDate) Apply(base domain.EmployeeRecord) (domain.EmployeeRecord, error) {
	modified := base
	if err := modified.SetEndDate(st.Date); err != nil {
		return base, NewTransformError(st.Name(), "apply", "invalid date", err)
	}
	return modified, nil
}

// AdjustSalary scales the salary by a percentage. In payroll-cost mode the
// cost is scaled and the daily salary derived from it again.
type AdjustSalary struct {
	Percent decimal.Decimal // e.g. 10 for a 10% raise, -5 for a cut
	Factors domain.SalaryFactors
}

func (as *AdjustSalary) Name() string {
	return "adjust_salary"
}

func (as *AdjustSalary) Description() string {
	return fmt.Sprintf("Adjust the salary by %s%%", as.Percent.String())
}

func (as *AdjustSalary) Validate(base domain.EmployeeRecord) error {
	if as.Percent.LessThanOrEqual(hundred.Neg()) {
		return NewTransformError(as.Name(), "validate", fmt.Sprintf("percent must be greater than -100, got %s", as.Percent), nil)
	}
	if base.PayrollCostMode() && as.Factors.CostToGross.IsZero() {
		return NewTransformError(as.Name(), "validate", "salary factors are required in payroll-cost mode", nil)
	}
	return nil
}

func (as *AdjustSalary) Apply(base domain.EmployeeRecord) (domain.EmployeeRecord, error) {
	modified := base
	factor := decimal.NewFromInt(1).Add(as.Percent.Div(hundred))

	if base.PayrollCostMode() {
		if err := modified.SetMonthlyPayrollCost(base.MonthlyPayrollCost.Mul(factor), as.Factors); err != nil {
			return base, NewTransformError(as.Name(), "apply", "invalid payroll cost", err)
		}
		return modified, nil
	}

	if err := modified.SetDailySalary(base.DailySalary.Mul(factor)); err != nil {
		return base, NewTransformError(as.Name(), "apply", "invalid daily salary", err)
	}
	if base.ManualSDI.IsPositive() {
		modified.ManualSDI = base.ManualSDI.Mul(factor)
	}
	return modified, nil
}

// SetAguinaldoDays changes the contractual aguinaldo days. The statutory
// floor is still applied by the engine.
type SetAguinaldoDays struct {
	Days decimal.Decimal
}

func (sa *SetAguinaldoDays) Name() string {
	return "set_aguinaldo_days"
}

func (sa *SetAguinaldoDays) Description() string {
	return fmt.Sprintf("Set aguinaldo to %s days", sa.Days.String())
}

func (sa *SetAguinaldoDays) Validate(domain.EmployeeRecord) error {
	if sa.Days.IsNegative() {
		return NewTransformError(sa.Name(), "validate", "days cannot be negative", nil)
	}
	return nil
}

func (sa *SetAguinaldoDays) Apply(base domain.EmployeeRecord) (domain.EmployeeRecord, error) {
	modified := base
	modified.AguinaldoDays = sa.Days
	return modified, nil
}

// SetVacationPremium changes the vacation premium percentage.
type SetVacationPremium struct {
	Percent decimal.Decimal
}

func (sv *SetVacationPremium) Name() string {
	return "set_vacation_premium"
}

func (sv *SetVacationPremium) Description() string {
	return fmt.Sprintf("Set the vacation premium to %s%%", sv.Percent.String())
}

func (sv *SetVacationPremium) Validate(domain.EmployeeRecord) error {
	if sv.Percent.IsNegative() || sv.Percent.GreaterThan(hundred) {
		return NewTransformError(sv.Name(), "validate", fmt.Sprintf("percent must be between 0 and 100, got %s", sv.Percent), nil)
	}
	return nil
}

func (sv *SetVacationPremium) Apply(base domain.EmployeeRecord) (domain.EmployeeRecord, error) {
	modified := base
	if err := modified.SetVacationPremiumPkg(sv.Percent); err != nil {
		return base, NewTransformError(sv.Name(), "apply", "invalid percent", err)
	}
	return modified, nil
}

// SetPendingBonuses changes the bonuses owed at termination.
type SetPendingBonuses struct {
	Amount decimal.Decimal
}

func (sp *SetPendingBonuses) Name() string {
	return "set_pending_bonuses"
}

func (sp *SetPendingBonuses) Description() string {
	return fmt.Sprintf("Set pending bonuses to %s", sp.Amount.StringFixed(2))
}

func (sp *SetPendingBonuses) Validate(domain.EmployeeRecord) error {
	if sp.Amount.IsNegative() {
		return NewTransformError(sp.Name(), "validate", "amount cannot be negative", nil)
	}
	return nil
}

func (sp *SetPendingBonuses) Apply(base domain.EmployeeRecord) (domain.EmployeeRecord, error) {
	modified := base
	if err := modified.SetPendingBonuses(sp.Amount); err != nil {
		return base, NewTransformError(sp.Name(), "apply", "invalid amount", err)
	}
	return modified, nil
}

// SetVacationTaken changes the vacation days already enjoyed.
type SetVacationTaken struct {
	Days decimal.Decimal
}

func (sv *SetVacationTaken) Name() string {
	return "set_vacation_taken"
}

func (sv *SetVacationTaken) Description() string {
	return fmt.Sprintf("Set vacation days taken to %s", sv.Days.String())
}

func (sv *SetVacationTaken) Validate(domain.EmployeeRecord) error {
	if sv.Days.IsNegative() {
		return NewTransformError(sv.Name(), "validate", "days cannot be negative", nil)
	}
	return nil
}

func (sv *SetVacationTaken) Apply(base domain.EmployeeRecord) (domain.EmployeeRecord, error) {
	modified := base
	if err := modified.SetVacationDaysTaken(sv.Days); err != nil {
		return base, NewTransformError(sv.Name(), "apply", "invalid days", err)
	}
	return modified, nil
}

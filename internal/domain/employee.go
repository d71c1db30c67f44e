package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the ISO-8601 calendar date layout used for start and end dates
const DateLayout = "2006-01-02"

// EmployeeRecord represents one employment relationship to be settled
type EmployeeRecord struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`

	// Salary inputs. A positive MonthlyPayrollCost takes priority over
	// DailySalary and ManualSDI.
	DailySalary        decimal.Decimal `yaml:"daily_salary" json:"daily_salary"`
	MonthlyPayrollCost decimal.Decimal `yaml:"monthly_payroll_cost,omitempty" json:"monthly_payroll_cost"`
	ManualSDI          decimal.Decimal `yaml:"manual_sdi,omitempty" json:"manual_sdi"`

	StartDate string `yaml:"start_date" json:"start_date"` // YYYY-MM-DD
	EndDate   string `yaml:"end_date" json:"end_date"`     // YYYY-MM-DD

	AguinaldoDays      decimal.Decimal `yaml:"aguinaldo_days" json:"aguinaldo_days"`
	VacationPremiumPkg decimal.Decimal `yaml:"vacation_premium_pkg" json:"vacation_premium_pkg"` // Percentage 0-100
	MinimumWage        decimal.Decimal `yaml:"minimum_wage" json:"minimum_wage"`

	VacationDaysTaken decimal.Decimal `yaml:"vacation_days_taken" json:"vacation_days_taken"`
	PendingBonuses    decimal.Decimal `yaml:"pending_bonuses" json:"pending_bonuses"`

	// Free text, never used in calculations
	Notes string `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// NewEmployeeRecord creates a record carrying the statutory defaults
func NewEmployeeRecord(id, name string, rules LFTRules, today time.Time) EmployeeRecord {
	date := today.UTC().Format(DateLayout)
	return EmployeeRecord{
		ID:                 id,
		Name:               name,
		StartDate:          date,
		EndDate:            date,
		AguinaldoDays:      rules.MinimumAguinaldoDays,
		VacationPremiumPkg: rules.DefaultVacationPremiumPkg,
		MinimumWage:        rules.DefaultMinimumWage,
	}
}

// PayrollCostMode reports whether the monthly payroll cost drives the salary figures
func (e *EmployeeRecord) PayrollCostMode() bool {
	return e.MonthlyPayrollCost.GreaterThan(decimal.Zero)
}

// ParseDate parses a calendar date as UTC midnight
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.UTC)
}

// SetName sets the display name
func (e *EmployeeRecord) SetName(name string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	e.Name = name
	return nil
}

// SetDailySalary sets the daily salary used outside payroll-cost mode
func (e *EmployeeRecord) SetDailySalary(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("daily salary cannot be negative")
	}
	e.DailySalary = amount
	return nil
}

// SetMonthlyPayrollCost sets the monthly payroll cost. A positive cost also
// refreshes DailySalary with the derived gross daily wage and clears any
// manual SDI so the integrated wage is derived from the cost again.
func (e *EmployeeRecord) SetMonthlyPayrollCost(cost decimal.Decimal, factors SalaryFactors) error {
	if cost.IsNegative() {
		return fmt.Errorf("monthly payroll cost cannot be negative")
	}
	e.MonthlyPayrollCost = cost
	if cost.IsPositive() {
		e.DailySalary = cost.Div(factors.CostToGross).Div(decimal.NewFromInt(DaysPerMonth))
		e.ManualSDI = decimal.Zero
	}
	return nil
}

// SetManualSDI sets a captured integrated daily wage. It is only honored
// while no payroll cost is set.
func (e *EmployeeRecord) SetManualSDI(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("manual SDI cannot be negative")
	}
	if amount.IsPositive() && e.PayrollCostMode() {
		return fmt.Errorf("manual SDI cannot be set while a monthly payroll cost is active")
	}
	e.ManualSDI = amount
	return nil
}

// SetStartDate sets the hire date
func (e *EmployeeRecord) SetStartDate(value string) error {
	if _, err := ParseDate(value); err != nil {
		return fmt.Errorf("invalid start date %q: %w", value, err)
	}
	e.StartDate = value
	return nil
}

// SetEndDate sets the termination date
func (e *EmployeeRecord) SetEndDate(value string) error {
	if _, err := ParseDate(value); err != nil {
		return fmt.Errorf("invalid end date %q: %w", value, err)
	}
	e.EndDate = value
	return nil
}

// SetAguinaldoDays sets the contractual aguinaldo days, raising anything
// below the legal minimum to that minimum
func (e *EmployeeRecord) SetAguinaldoDays(days decimal.Decimal, rules LFTRules) error {
	e.AguinaldoDays = decimal.Max(days, rules.MinimumAguinaldoDays)
	return nil
}

// SetVacationPremiumPkg sets the vacation premium percentage
func (e *EmployeeRecord) SetVacationPremiumPkg(percent decimal.Decimal) error {
	if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("vacation premium must be between 0 and 100, got %s", percent.String())
	}
	e.VacationPremiumPkg = percent
	return nil
}

// SetMinimumWage sets the daily minimum wage used for the seniority premium cap
func (e *EmployeeRecord) SetMinimumWage(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("minimum wage cannot be negative")
	}
	e.MinimumWage = amount
	return nil
}

// SetVacationDaysTaken sets the vacation days already enjoyed over the whole relationship
func (e *EmployeeRecord) SetVacationDaysTaken(days decimal.Decimal) error {
	if days.IsNegative() {
		return fmt.Errorf("vacation days taken cannot be negative")
	}
	e.VacationDaysTaken = days
	return nil
}

// SetPendingBonuses sets bonuses owed and not yet paid
func (e *EmployeeRecord) SetPendingBonuses(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("pending bonuses cannot be negative")
	}
	e.PendingBonuses = amount
	return nil
}

// SetNotes sets the free-text notes
func (e *EmployeeRecord) SetNotes(notes string) {
	e.Notes = notes
}

// ClearAmounts resets the salary and settlement amounts, keeping identity,
// dates and legal parameters
func (e *EmployeeRecord) ClearAmounts() {
	e.MonthlyPayrollCost = decimal.Zero
	e.DailySalary = decimal.Zero
	e.ManualSDI = decimal.Zero
	e.VacationDaysTaken = decimal.Zero
	e.PendingBonuses = decimal.Zero
	e.Notes = ""
}

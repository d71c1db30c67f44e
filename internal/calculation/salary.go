package calculation

import (
	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/shopspring/decimal"
)

var daysPerMonth = decimal.NewFromInt(domain.DaysPerMonth)

// SalaryBasis holds the daily wages each formula is based on
type SalaryBasis struct {
	// Base is the take-home daily wage used for proportional benefits
	Base decimal.Decimal
	// SDI is the integrated daily wage used for indemnification
	SDI         decimal.Decimal
	IsSDIManual bool
	// SeniorityBasis is the wage the seniority premium cap is applied to:
	// the gross daily wage in payroll-cost mode, Base otherwise
	SeniorityBasis    decimal.Decimal
	IntegrationFactor decimal.Decimal
	PayrollCostMode   bool
}

// IntegrationFactor returns 1 + (aguinaldo days + vacation days × premium%) / 365
func IntegrationFactor(effectiveAguinaldoDays decimal.Decimal, vacationDays int, vacationPremiumPkg decimal.Decimal) decimal.Decimal {
	premiumDays := decimal.NewFromInt(int64(vacationDays)).Mul(vacationPremiumPkg).Div(hundred)
	return decimal.NewFromInt(1).Add(effectiveAguinaldoDays.Add(premiumDays).Div(daysPerYear))
}

// NormalizeSalary resolves the base and integrated daily wages from whichever
// input mode is active. A positive payroll cost always wins and ignores any
// manual SDI; otherwise a positive manual SDI wins over the derived one.
func NormalizeSalary(record domain.EmployeeRecord, effectiveAguinaldoDays decimal.Decimal, upcomingVacationDays int, factors domain.SalaryFactors) SalaryBasis {
	factor := IntegrationFactor(effectiveAguinaldoDays, upcomingVacationDays, record.VacationPremiumPkg)

	if record.PayrollCostMode() {
		grossDaily := record.MonthlyPayrollCost.Div(factors.CostToGross).Div(daysPerMonth)
		netDaily := record.MonthlyPayrollCost.Div(factors.CostToNet).Div(daysPerMonth)
		return SalaryBasis{
			Base:              netDaily,
			SDI:               grossDaily.Mul(factor),
			SeniorityBasis:    grossDaily,
			IntegrationFactor: factor,
			PayrollCostMode:   true,
		}
	}

	basis := SalaryBasis{
		Base:              record.DailySalary,
		SeniorityBasis:    record.DailySalary,
		IntegrationFactor: factor,
	}
	if record.ManualSDI.IsPositive() {
		basis.SDI = record.ManualSDI
		basis.IsSDIManual = true
	} else {
		basis.SDI = record.DailySalary.Mul(factor)
	}
	return basis
}

package calculation

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/shopspring/decimal"
)

// SalaryInputMode names what a monthly amount represents
type SalaryInputMode string

const (
	ModeCost  SalaryInputMode = "cost"  // employer payroll cost
	ModeGross SalaryInputMode = "gross" // gross monthly salary
	ModeNet   SalaryInputMode = "net"   // take-home monthly pay
)

// ParseSalaryInputMode accepts cost, gross or net in any case
func ParseSalaryInputMode(s string) (SalaryInputMode, error) {
	switch mode := SalaryInputMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case ModeCost, ModeGross, ModeNet:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown salary input mode %q (valid: cost, gross, net)", s)
	}
}

// SalaryEstimate is the gross pay inferred from a monthly figure
type SalaryEstimate struct {
	Mode          SalaryInputMode `json:"mode" yaml:"mode"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount" yaml:"monthly_amount"`
	GrossMonthly  decimal.Decimal `json:"gross_monthly" yaml:"gross_monthly"`
	GrossDaily    decimal.Decimal `json:"gross_daily" yaml:"gross_daily"`
}

// EstimateDailySalary converts a monthly cost, gross or net amount into the
// gross daily salary. Non-positive amounts estimate to zero.
func EstimateDailySalary(amount decimal.Decimal, mode SalaryInputMode, factors domain.SalaryFactors) (SalaryEstimate, error) {
	estimate := SalaryEstimate{Mode: mode, MonthlyAmount: amount}

	var gross decimal.Decimal
	switch mode {
	case ModeGross:
		gross = amount
	case ModeNet:
		gross = amount.Mul(factors.NetToGross)
	case ModeCost:
		gross = amount.Div(factors.CostToGross)
	default:
		return SalaryEstimate{}, fmt.Errorf("unknown salary input mode %q", mode)
	}

	if !amount.IsPositive() {
		return estimate, nil
	}
	estimate.GrossMonthly = gross
	estimate.GrossDaily = gross.Div(daysPerMonth)
	return estimate, nil
}

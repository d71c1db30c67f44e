package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Calendar conventions fixed by the LFT formulas
const (
	DaysPerYear  = 365
	DaysPerMonth = 30
)

// LFTRules contains the statutory tables and calibration constants the engine
// reads. It is loaded from lft.yaml or taken from DefaultLFTRules.
type LFTRules struct {
	Metadata                  RulesMetadata   `yaml:"metadata" json:"metadata"`
	VacationTable             VacationTable   `yaml:"vacation_table" json:"vacation_table"`
	SalaryFactors             SalaryFactors   `yaml:"salary_factors" json:"salary_factors"`
	MinimumAguinaldoDays      decimal.Decimal `yaml:"minimum_aguinaldo_days" json:"minimum_aguinaldo_days"`
	DefaultVacationPremiumPkg decimal.Decimal `yaml:"default_vacation_premium_pkg" json:"default_vacation_premium_pkg"`
	DefaultMinimumWage        decimal.Decimal `yaml:"default_minimum_wage" json:"default_minimum_wage"`
}

// RulesMetadata describes where a rules set comes from
type RulesMetadata struct {
	DataYear    int    `yaml:"data_year" json:"data_year"`
	Description string `yaml:"description" json:"description"`
}

// SalaryFactors are payroll calibration constants, not LFT-mandated values.
// They convert a monthly employer cost into gross and net monthly pay.
type SalaryFactors struct {
	CostToGross decimal.Decimal `yaml:"cost_to_gross" json:"cost_to_gross"` // cost / gross
	CostToNet   decimal.Decimal `yaml:"cost_to_net" json:"cost_to_net"`     // cost / net
	NetToGross  decimal.Decimal `yaml:"net_to_gross" json:"net_to_gross"`   // gross / net
}

// VacationBracket grants Days per year of service from FromYear onward
type VacationBracket struct {
	FromYear int `yaml:"from_year" json:"from_year"`
	Days     int `yaml:"days" json:"days"`
}

// VacationTable is a step function of years of service, ordered by FromYear
type VacationTable []VacationBracket

// DaysFor returns the vacation days granted for the given year of service.
// Years below the first bracket get the first tier.
func (vt VacationTable) DaysFor(yearOfService int) int {
	if len(vt) == 0 {
		return 0
	}
	days := vt[0].Days
	for _, bracket := range vt {
		if yearOfService < bracket.FromYear {
			break
		}
		days = bracket.Days
	}
	return days
}

// Validate checks the table is a non-decreasing step function starting at year 1
func (vt VacationTable) Validate() error {
	if len(vt) == 0 {
		return fmt.Errorf("vacation table is empty")
	}
	if vt[0].FromYear != 1 {
		return fmt.Errorf("vacation table must start at year 1, starts at %d", vt[0].FromYear)
	}
	for i := 1; i < len(vt); i++ {
		if vt[i].FromYear <= vt[i-1].FromYear {
			return fmt.Errorf("vacation bracket %d: from_year %d must be greater than %d", i, vt[i].FromYear, vt[i-1].FromYear)
		}
		if vt[i].Days < vt[i-1].Days {
			return fmt.Errorf("vacation bracket %d: days %d cannot be lower than previous %d", i, vt[i].Days, vt[i-1].Days)
		}
	}
	if vt[0].Days <= 0 {
		return fmt.Errorf("vacation days must be positive")
	}
	return nil
}

// LFT2023VacationTable is the canonical table after the 2023 reform to
// article 76: 12 days the first year, +2 per year up to 20, then +2 every
// five years, plateauing at 32 days from year 31.
var LFT2023VacationTable = VacationTable{
	{FromYear: 1, Days: 12},
	{FromYear: 2, Days: 14},
	{FromYear: 3, Days: 16},
	{FromYear: 4, Days: 18},
	{FromYear: 5, Days: 20},
	{FromYear: 6, Days: 22},
	{FromYear: 11, Days: 24},
	{FromYear: 16, Days: 26},
	{FromYear: 21, Days: 28},
	{FromYear: 26, Days: 30},
	{FromYear: 31, Days: 32},
}

// DefaultLFTRules returns the built-in rules set
func DefaultLFTRules() LFTRules {
	table := make(VacationTable, len(LFT2023VacationTable))
	copy(table, LFT2023VacationTable)

	return LFTRules{
		Metadata: RulesMetadata{
			DataYear:    2024,
			Description: "LFT 2023 vacation reform, 2024 general minimum wage",
		},
		VacationTable: table,
		SalaryFactors: SalaryFactors{
			// 33,400 cost -> 25,000 gross -> 20,700 net
			CostToGross: decimal.RequireFromString("1.336"),
			CostToNet:   decimal.RequireFromString("1.6135"),
			NetToGross:  decimal.NewFromInt(1).Div(decimal.RequireFromString("0.828")),
		},
		MinimumAguinaldoDays:      decimal.NewFromInt(15),
		DefaultVacationPremiumPkg: decimal.NewFromInt(25),
		DefaultMinimumWage:        decimal.RequireFromString("248.93"),
	}
}

// Validate checks the rules are usable by the engine
func (r LFTRules) Validate() error {
	if err := r.VacationTable.Validate(); err != nil {
		return fmt.Errorf("vacation table: %w", err)
	}
	if !r.SalaryFactors.CostToGross.IsPositive() {
		return fmt.Errorf("cost_to_gross factor must be positive")
	}
	if !r.SalaryFactors.CostToNet.IsPositive() {
		return fmt.Errorf("cost_to_net factor must be positive")
	}
	if !r.SalaryFactors.NetToGross.IsPositive() {
		return fmt.Errorf("net_to_gross factor must be positive")
	}
	if r.MinimumAguinaldoDays.LessThan(decimal.NewFromInt(15)) {
		return fmt.Errorf("minimum aguinaldo days cannot be below the statutory 15, got %s", r.MinimumAguinaldoDays.String())
	}
	if r.DefaultVacationPremiumPkg.IsNegative() || r.DefaultVacationPremiumPkg.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("default vacation premium must be between 0 and 100")
	}
	if r.DefaultMinimumWage.IsNegative() {
		return fmt.Errorf("default minimum wage cannot be negative")
	}
	return nil
}
